package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

// --- WebSocket Agent Logic ---

// Feed keeps a WebSocket connection to the ordering backend and prints
// every order it pushes.
type Feed struct {
	url        string
	token      func() string
	deviceID   string
	dispatcher OrderDispatcher
	log        *zap.Logger

	Dialer         *websocket.Dialer
	ReconnectDelay time.Duration
}

// NewFeed builds a feed. token is asked for the current access token on
// every dial so refreshed sessions are picked up after a reconnect.
func NewFeed(url string, token func() string, deviceID string, dispatcher OrderDispatcher, log *zap.Logger) *Feed {
	return &Feed{
		url:            url,
		token:          token,
		deviceID:       deviceID,
		dispatcher:     dispatcher,
		log:            log.Named("ws"),
		Dialer:         websocket.DefaultDialer,
		ReconnectDelay: 5 * time.Second,
	}
}

// Run connects and reconnects until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	f.log.Info("connecting to websocket", zap.String("url", f.url))

	for {
		if err := f.session(ctx); err != nil && ctx.Err() == nil {
			f.log.Warn("websocket session ended", zap.Error(err), zap.Duration("retryIn", f.ReconnectDelay))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(f.ReconnectDelay):
		}
	}
}

func (f *Feed) session(ctx context.Context) error {
	header := http.Header{}
	if token := f.token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	header.Set("X-Device-Id", f.deviceID)

	conn, _, err := f.Dialer.DialContext(ctx, f.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	f.log.Info("websocket connected")

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c := &wsConn{conn: conn}
	// prints run beside the read loop so pings keep being answered
	var jobs sync.WaitGroup
	defer jobs.Wait()

	if err := c.write(model.WSMessage{Type: model.MessageTypeRegister, DeviceID: f.deviceID}); err != nil {
		return err
	}

	for {
		var msg model.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		switch msg.Type {
		case model.MessageTypeRegistered:
			f.log.Info("registered with server")

		case model.MessageTypePing:
			if err := c.write(model.WSMessage{Type: model.MessageTypePong, DeviceID: f.deviceID}); err != nil {
				return err
			}

		case model.MessageTypePrintOrder:
			if msg.OrderID == "" {
				f.log.Warn("print_order without orderId")
				continue
			}
			jobs.Add(1)
			go func(orderID string) {
				defer jobs.Done()
				if err := c.write(f.handlePrint(ctx, orderID)); err != nil {
					f.log.Warn("print reply not delivered", zap.String("order", model.ShortID(orderID, 8)), zap.Error(err))
				}
			}(msg.OrderID)

		case model.MessageTypeUnregister:
			f.log.Info("server requested unregister")
			return nil

		default:
			f.log.Debug("unknown message type", zap.String("type", string(msg.Type)))
		}
	}
}

func (f *Feed) handlePrint(ctx context.Context, orderID string) model.WSMessage {
	log := f.log.With(zap.String("order", model.ShortID(orderID, 8)))
	log.Info("print order received")

	res, err := f.dispatcher.Dispatch(model.WithTrigger(ctx, model.TriggerWebSocket), orderID)
	reply := model.WSMessage{DeviceID: f.deviceID, OrderID: orderID}

	switch {
	case err != nil && !errors.Is(err, ErrMarkPrinted):
		reply.Type = model.MessageTypePrintFailed
		reply.Error = err.Error()
	case res.Outcome == OutcomePrinted:
		reply.Type = model.MessageTypePrinted
	case res.Outcome == OutcomeAlreadyPrinted:
		reply.Type = model.MessageTypePrinted
		reply.AlreadyPrinted = true
	default:
		reply.Type = model.MessageTypePrintFailed
		reply.Error = res.Outcome.String()
		if res.Reason != "" {
			reply.Error += ": " + res.Reason
		}
	}

	log.Info("print order handled", zap.String("reply", string(reply.Type)))
	return reply
}

// wsConn serialises writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) write(msg model.WSMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(msg)
}
