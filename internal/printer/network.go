package printer

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type connState int32

const (
	stateIdle connState = iota
	stateConnecting
	stateConnected
)

func (s connState) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateConnected:
		return "connected"
	default:
		return "idle"
	}
}

const writeTimeout = 10 * time.Second

// Network talks raw ESC/POS to a printer listening on a TCP port (9100).
type Network struct {
	addr string
	log  *zap.Logger

	MaxAttempts int
	DialTimeout time.Duration
	RetryDelay  time.Duration

	sendMu    sync.Mutex
	connectMu sync.Mutex
	mu        sync.Mutex // guards conn
	conn      net.Conn
	state     atomic.Int32
}

func NewNetwork(ip string, port int, log *zap.Logger) *Network {
	return &Network{
		addr:        net.JoinHostPort(ip, strconv.Itoa(port)),
		log:         log,
		MaxAttempts: 3,
		DialTimeout: 5 * time.Second,
		RetryDelay:  3 * time.Second,
	}
}

func (n *Network) Kind() Kind { return KindNetwork }

func (n *Network) Describe() string { return "network printer " + n.addr }

func (n *Network) IsConnected() bool {
	return connState(n.state.Load()) == stateConnected
}

func (n *Network) setState(s connState) {
	old := connState(n.state.Swap(int32(s)))
	if old != s {
		n.log.Debug("printer connection state", zap.Stringer("from", old), zap.Stringer("to", s))
	}
}

// Connect dials the printer, retrying a few times before giving up.
func (n *Network) Connect(ctx context.Context) error {
	n.connectMu.Lock()
	defer n.connectMu.Unlock()

	if n.IsConnected() {
		return nil
	}
	n.setState(stateConnecting)

	var lastErr error
	for attempt := 1; attempt <= n.MaxAttempts; attempt++ {
		n.log.Info("connecting to printer", zap.String("addr", n.addr), zap.Int("attempt", attempt))

		d := net.Dialer{Timeout: n.DialTimeout}
		conn, err := d.DialContext(ctx, "tcp", n.addr)
		if err == nil {
			n.mu.Lock()
			n.conn = conn
			n.mu.Unlock()
			n.setState(stateConnected)
			n.log.Info("printer connected", zap.String("addr", n.addr))
			go n.watch(conn)
			return nil
		}

		lastErr = err
		n.log.Warn("printer connection failed", zap.String("addr", n.addr), zap.Int("attempt", attempt), zap.Error(err))
		if attempt == n.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			n.setState(stateIdle)
			return ctx.Err()
		case <-time.After(n.RetryDelay):
		}
	}

	n.setState(stateIdle)
	return fmt.Errorf("connect to %s after %d attempts: %w", n.addr, n.MaxAttempts, lastErr)
}

// watch drains whatever the printer sends back and notices when the
// socket goes away, so the next Send reconnects.
func (n *Network) watch(conn net.Conn) {
	buf := make([]byte, 256)
	for {
		if _, err := conn.Read(buf); err != nil {
			if n.drop(conn) {
				n.log.Warn("printer connection closed", zap.String("addr", n.addr), zap.Error(err))
			}
			return
		}
	}
}

// drop forgets conn if it is still the active connection.
func (n *Network) drop(conn net.Conn) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	conn.Close()
	if n.conn != conn {
		return false
	}
	n.conn = nil
	n.setState(stateIdle)
	return true
}

func (n *Network) Send(ctx context.Context, receipt []byte) error {
	n.sendMu.Lock()
	defer n.sendMu.Unlock()

	if !n.IsConnected() {
		n.log.Warn("printer not connected, reconnecting", zap.String("addr", n.addr))
		if err := n.Connect(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrNotConnected, err)
		}
	}

	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		n.drop(conn)
		return fmt.Errorf("set write deadline: %w", err)
	}

	if _, err := conn.Write(Frame(receipt)); err != nil {
		n.drop(conn)
		return fmt.Errorf("write to %s: %w", n.addr, err)
	}
	return nil
}

func (n *Network) Disconnect() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var err error
	if n.conn != nil {
		err = n.conn.Close()
		n.conn = nil
	}
	n.setState(stateIdle)
	n.log.Info("printer disconnected", zap.String("addr", n.addr))
	return err
}
