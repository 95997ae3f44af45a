package printer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

type Kind string

const (
	KindNetwork Kind = "network"
	KindSerial  Kind = "serial"
	KindSpooler Kind = "spooler"
)

var ErrNotConnected = errors.New("printer not connected")

// Transport delivers a formatted receipt to a physical printer.
// Implementations serialise Send calls.
type Transport interface {
	Connect(ctx context.Context) error
	Send(ctx context.Context, receipt []byte) error
	Disconnect() error
	IsConnected() bool
	Kind() Kind
	Describe() string
}

// New picks the transport for the configured printer: a network printer
// when an IP is set, a serial port when the name looks like one, and the
// OS spooler otherwise.
func New(cfg model.PrinterConfig, log *zap.Logger) (Transport, error) {
	log = log.Named("printer")

	switch cfg.Type {
	case model.PrinterTypeSystem:
		return NewSpooler(cfg.Name, false, log), nil
	case model.PrinterTypeThermal:
		if cfg.IP != "" {
			return NewNetwork(cfg.IP, cfg.Port, log), nil
		}
		if IsSerialPort(cfg.Name) {
			return NewSerial(cfg.Name, log), nil
		}
		if cfg.Name != "" {
			return NewSpooler(cfg.Name, true, log), nil
		}
		return nil, fmt.Errorf("thermal printer needs an IP or a name")
	default:
		return nil, fmt.Errorf("unknown printer type %q", cfg.Type)
	}
}
