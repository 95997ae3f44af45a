package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/printer"
)

//go:generate mockgen -source=poller.go -destination=poller_mock_test.go -package=services

// PollAPI is the part of the ordering API the poller needs.
type PollAPI interface {
	PollOrders(ctx context.Context, since string) (*model.PollResult, error)
	GetRestaurantProfile(ctx context.Context, forceRefresh bool) (*model.RestaurantProfile, error)
}

// OrderDispatcher prints a single order.
type OrderDispatcher interface {
	Dispatch(ctx context.Context, orderID string) (Result, error)
}

var (
	ErrAutoPrintDisabled   = errors.New("automatic kitchen receipt printing is disabled for this restaurant")
	ErrDeviceNotAuthorized = errors.New("automatic printing is pinned to another device")
)

// Poller periodically asks the API for new orders and dispatches the
// printable ones.
type Poller struct {
	api        PollAPI
	dispatcher OrderDispatcher
	transport  printer.Transport
	processed  *ProcessedOrders
	deviceID   string
	interval   time.Duration
	log        *zap.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	checkpoint string
}

func NewPoller(api PollAPI, dispatcher OrderDispatcher, transport printer.Transport, processed *ProcessedOrders, deviceID string, interval time.Duration, log *zap.Logger) *Poller {
	return &Poller{
		api:        api,
		dispatcher: dispatcher,
		transport:  transport,
		processed:  processed,
		deviceID:   deviceID,
		interval:   interval,
		log:        log.Named("poller"),
	}
}

// Initialize checks that this device may print automatically and that the
// printer answers. Only an unreachable network printer is fatal; serial
// and spooler printers are checked again on every job.
func (p *Poller) Initialize(ctx context.Context) error {
	profile, err := p.api.GetRestaurantProfile(ctx, true)
	if err != nil {
		return fmt.Errorf("fetch restaurant profile: %w", err)
	}
	if !profile.AutoPrintEnabled {
		return ErrAutoPrintDisabled
	}

	switch profile.PinnedDeviceID {
	case "":
		p.log.Warn("no device is pinned for automatic printing; any device of this restaurant may print")
	case p.deviceID:
		p.log.Info("this device is authorized for automatic printing")
	default:
		return fmt.Errorf("%w: pinned %s, local %s", ErrDeviceNotAuthorized,
			model.ShortID(profile.PinnedDeviceID, 8), model.ShortID(p.deviceID, 8))
	}

	if err := p.transport.Connect(ctx); err != nil {
		if p.transport.Kind() == printer.KindNetwork {
			return fmt.Errorf("printer unreachable: %w", err)
		}
		p.log.Warn("printer check failed, continuing", zap.String("printer", p.transport.Describe()), zap.Error(err))
		return nil
	}
	p.log.Info("printer ready", zap.String("printer", p.transport.Describe()))
	return nil
}

// Start launches the polling loop. The first poll happens immediately.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.log.Warn("poller already running")
		return
	}

	loopCtx, cancel := context.WithCancel(model.WithTrigger(ctx, model.TriggerPoller))
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(loopCtx, p.done)

	p.log.Info("polling started", zap.Duration("interval", p.interval))
}

// Stop ends the loop, waits for an in-flight poll to finish and releases
// the printer.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	if err := p.transport.Disconnect(); err != nil {
		p.log.Warn("printer disconnect failed", zap.Error(err))
	}
	p.log.Info("polling stopped")
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Checkpoint is the timestamp the next poll will send as lastCheckAt.
func (p *Poller) Checkpoint() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checkpoint
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	since := p.Checkpoint()

	res, err := p.api.PollOrders(ctx, since)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsAuth() {
			p.log.Error("polling rejected by the API; check API_TOKEN/REFRESH_TOKEN or ADMIN_EMAIL/ADMIN_PASSWORD", zap.Error(err))
		} else {
			p.log.Error("polling failed", zap.Error(err))
		}
		return
	}

	if len(res.Orders) > 0 {
		p.log.Info("orders received", zap.Int("count", len(res.Orders)))
	}

	for i := range res.Orders {
		if ctx.Err() != nil {
			break
		}
		order := &res.Orders[i]
		if reason := p.skipReason(order); reason != "" {
			p.log.Debug("skipping order", zap.String("order", model.ShortID(order.ID, 8)), zap.String("reason", reason))
			continue
		}

		result, err := p.dispatcher.Dispatch(ctx, order.ID)
		fields := []zap.Field{
			zap.String("order", model.ShortID(order.ID, 8)),
			zap.Stringer("outcome", result.Outcome),
		}
		if err != nil {
			p.log.Error("dispatch failed", append(fields, zap.Error(err))...)
			continue
		}
		p.log.Debug("dispatch finished", fields...)
	}

	if res.Timestamp != "" {
		p.mu.Lock()
		p.checkpoint = res.Timestamp
		p.mu.Unlock()
	}
}

func (p *Poller) skipReason(o *model.Order) string {
	switch {
	case o.Printed():
		return "already printed"
	case !o.Status.Printable():
		return "status " + string(o.Status)
	case p.processed.Contains(o.ID):
		return "already printed by this process"
	default:
		return ""
	}
}
