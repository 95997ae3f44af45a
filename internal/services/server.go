package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/printer"
)

//go:generate mockgen -source=server.go -destination=server_mock_test.go -package=services

const serviceName = "printer-service"

// PrintService is what the local HTTP surface triggers.
type PrintService interface {
	Dispatch(ctx context.Context, orderID string) (Result, error)
	PrintTest(ctx context.Context) error
	Preview(ctx context.Context, orderID string) (string, error)
}

// Renderer turns receipt text into an image.
type Renderer interface {
	RenderPNG(ctx context.Context, title, text string) ([]byte, error)
}

// Server exposes manual print triggers to the front desk on localhost.
type Server struct {
	svc       PrintService
	transport printer.Transport
	renderer  Renderer
	deviceID  string
	log       *zap.Logger
}

// NewServer builds the HTTP surface. renderer may be nil when image
// previews are disabled.
func NewServer(svc PrintService, transport printer.Transport, renderer Renderer, deviceID string, log *zap.Logger) *Server {
	return &Server{
		svc:       svc,
		transport: transport,
		renderer:  renderer,
		deviceID:  deviceID,
		log:       log.Named("http"),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Post("/print", s.handlePrint)
	r.Post("/print/test", s.handlePrintTest)
	r.Get("/health", s.handleHealth)
	r.Get("/preview/{orderId}", s.handlePreview)

	return otelhttp.NewHandler(r, serviceName)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestId", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var req model.PrintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSON(w, http.StatusBadRequest, model.PrintResponse{Error: "orderId é obrigatório"})
		return
	}

	s.log.Info("print requested", zap.String("order", model.ShortID(req.OrderID, 8)))
	ctx := model.WithTrigger(r.Context(), model.TriggerHTTP)

	res, err := s.svc.Dispatch(ctx, req.OrderID)
	if err != nil && !errors.Is(err, ErrMarkPrinted) {
		s.log.Error("print request failed", zap.String("order", model.ShortID(req.OrderID, 8)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.PrintResponse{Error: err.Error()})
		return
	}

	switch res.Outcome {
	case OutcomePrinted:
		msg := "Pedido impresso com sucesso"
		if err != nil {
			msg = "Pedido impresso, mas não foi possível marcá-lo como impresso"
		}
		writeJSON(w, http.StatusOK, model.PrintResponse{Success: true, Message: msg})
	case OutcomeAlreadyPrinted:
		writeJSON(w, http.StatusOK, model.PrintResponse{Success: true, Message: "Pedido já foi impresso", AlreadyPrinted: true})
	case OutcomeIneligible:
		writeJSON(w, http.StatusOK, model.PrintResponse{Error: "Pedido não pode ser impresso: " + res.Reason})
	default:
		writeJSON(w, http.StatusInternalServerError, model.PrintResponse{Error: "Falha ao imprimir pedido"})
	}
}

func (s *Server) handlePrintTest(w http.ResponseWriter, r *http.Request) {
	ctx := model.WithTrigger(r.Context(), model.TriggerTest)
	if err := s.svc.PrintTest(ctx); err != nil {
		s.log.Error("test print failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.PrintResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, model.PrintResponse{Success: true, Message: "Impressão de teste enviada"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Success:          true,
		Service:          serviceName,
		DeviceID:         model.ShortID(s.deviceID, 8),
		PrinterConnected: s.transport.IsConnected(),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	text, err := s.svc.Preview(r.Context(), orderID)
	if errors.Is(err, ErrOrderNotFound) {
		writeJSON(w, http.StatusNotFound, model.PrintResponse{Error: "Pedido não encontrado"})
		return
	}
	if err != nil {
		s.log.Error("preview failed", zap.String("order", model.ShortID(orderID, 8)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.PrintResponse{Error: err.Error()})
		return
	}

	if r.URL.Query().Get("format") != "png" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
		return
	}

	if s.renderer == nil {
		writeJSON(w, http.StatusNotImplemented, model.PrintResponse{Error: "image previews are disabled (PREVIEW_ENABLED)"})
		return
	}
	img, err := s.renderer.RenderPNG(r.Context(), "Pedido "+model.ShortID(orderID, 8), text)
	if err != nil {
		s.log.Error("preview rendering failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.PrintResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}
