package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/printer"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/receipt"
)

//go:generate mockgen -source=dispatcher.go -destination=dispatcher_mock_test.go -package=services
//go:generate mockgen -destination=transport_mock_test.go -package=services github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/printer Transport

// OrderAPI is the part of the ordering API a dispatch needs.
type OrderAPI interface {
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	MarkPrinted(ctx context.Context, id string) error
	GetRestaurantProfile(ctx context.Context, forceRefresh bool) (*model.RestaurantProfile, error)
}

type Outcome int

const (
	OutcomePrinted Outcome = iota
	OutcomeAlreadyPrinted
	OutcomeIneligible
	OutcomeTransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomePrinted:
		return "printed"
	case OutcomeAlreadyPrinted:
		return "already_printed"
	case OutcomeIneligible:
		return "ineligible"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Result struct {
	Outcome  Outcome
	Reason   string
	Attempts int
}

const defaultRestaurantName = "Restaurante"

// ErrMarkPrinted wraps a failure to record a print that did happen.
var ErrMarkPrinted = errors.New("order printed but not marked")

// Dispatcher runs the print-and-acknowledge transaction for one order.
type Dispatcher struct {
	api       OrderAPI
	transport printer.Transport
	formatter *receipt.Formatter
	processed *ProcessedOrders
	log       *zap.Logger

	MaxAttempts int
	Backoff     time.Duration
}

func NewDispatcher(api OrderAPI, transport printer.Transport, formatter *receipt.Formatter, processed *ProcessedOrders, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		api:         api,
		transport:   transport,
		formatter:   formatter,
		processed:   processed,
		log:         log.Named("dispatcher"),
		MaxAttempts: 3,
		Backoff:     time.Second,
	}
}

// Dispatch prints the order unless the remote side already recorded a
// print or the order cannot be printed. The returned error is set only for
// upstream failures and for a print that could not be marked.
func (d *Dispatcher) Dispatch(ctx context.Context, orderID string) (Result, error) {
	log := d.log.With(
		zap.String("order", model.ShortID(orderID, 8)),
		zap.String("trigger", string(model.TriggerFrom(ctx))),
	)

	order, err := d.api.GetOrder(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		log.Warn("order not found")
		return Result{Outcome: OutcomeIneligible, Reason: "order not found"}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("fetch order: %w", err)
	}

	if order.Printed() {
		log.Info("order already printed", zap.Time("printedAt", *order.PrintedAt))
		return Result{Outcome: OutcomeAlreadyPrinted, Reason: "already printed"}, nil
	}
	if !order.Status.Printable() {
		log.Info("order status not printable", zap.String("status", string(order.Status)))
		return Result{Outcome: OutcomeIneligible, Reason: "status " + string(order.Status)}, nil
	}
	if len(order.Items) == 0 {
		log.Warn("order has no items")
		return Result{Outcome: OutcomeIneligible, Reason: "no items"}, nil
	}
	if len(receipt.GroupItems(order.Items)) == 0 {
		log.Warn("order has no printable items", zap.Int("items", len(order.Items)))
		return Result{Outcome: OutcomeIneligible, Reason: "no printable items"}, nil
	}

	text := d.formatter.Format(order, d.restaurantName(ctx))

	attempts, sendErr := d.deliver(ctx, log, []byte(text))
	if sendErr != nil {
		log.Error("order not printed", zap.Int("attempts", attempts), zap.Error(sendErr))
		return Result{Outcome: OutcomeTransportFailure, Reason: sendErr.Error(), Attempts: attempts}, nil
	}

	d.processed.Add(orderID)
	res := Result{Outcome: OutcomePrinted, Attempts: attempts}

	if err := d.api.MarkPrinted(ctx, orderID); err != nil {
		log.Error("order printed but could not be marked", zap.Error(err))
		return res, fmt.Errorf("%w: %w", ErrMarkPrinted, err)
	}
	log.Info("order printed", zap.Int("attempts", attempts))
	return res, nil
}

// deliver sends the receipt, pausing Backoff*attempt between tries.
func (d *Dispatcher) deliver(ctx context.Context, log *zap.Logger, data []byte) (int, error) {
	var err error
	for attempt := 1; attempt <= d.MaxAttempts; attempt++ {
		if err = d.transport.Send(ctx, data); err == nil {
			return attempt, nil
		}
		log.Warn("print attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", d.MaxAttempts),
			zap.String("printer", d.transport.Describe()),
			zap.Error(err),
		)
		if attempt == d.MaxAttempts {
			return attempt, err
		}

		select {
		case <-time.After(d.Backoff * time.Duration(attempt)):
		case <-ctx.Done():
			return attempt, fmt.Errorf("%w (gave up: %v)", err, ctx.Err())
		}
	}
	return d.MaxAttempts, err
}

func (d *Dispatcher) restaurantName(ctx context.Context) string {
	profile, err := d.api.GetRestaurantProfile(ctx, false)
	if err != nil {
		d.log.Warn("restaurant profile unavailable, using default name", zap.Error(err))
		return defaultRestaurantName
	}
	if profile.Name == "" {
		return defaultRestaurantName
	}
	return profile.Name
}

// Preview formats an order without printing it or checking eligibility.
func (d *Dispatcher) Preview(ctx context.Context, orderID string) (string, error) {
	order, err := d.api.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return d.formatter.Format(order, d.restaurantName(ctx)), nil
}

// PrintTest sends a sample receipt straight to the printer.
func (d *Dispatcher) PrintTest(ctx context.Context) error {
	order := sampleOrder(time.Now())
	text := d.formatter.Format(order, d.restaurantName(ctx))

	if err := d.transport.Send(ctx, []byte(text)); err != nil {
		return fmt.Errorf("test print on %s: %w", d.transport.Describe(), err)
	}
	d.log.Info("test receipt printed", zap.String("printer", d.transport.Describe()))
	return nil
}

func sampleOrder(now time.Time) *model.Order {
	price := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	return &model.Order{
		ID:           fmt.Sprintf("TESTE-%d", now.Unix()),
		Status:       model.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		CustomerName: "Cliente Teste",
		OrderType:    model.OrderTypePickup,
		Total:        decimal.RequireFromString("25.00"),
		Notes:        "Impressao de teste",
		Items: []model.OrderItem{
			{
				ID:        "test-item-1",
				Quantity:  1,
				Price:     price("25.00"),
				ProductID: "test-product",
				Product:   &model.Product{ID: "test-product", Name: "Produto Teste", Price: decimal.RequireFromString("25.00")},
			},
		},
	}
}
