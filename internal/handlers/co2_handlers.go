package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"co2-platform/internal/models"
	"co2-platform/pkg/logging"
	"co2-platform/pkg/metrics"
)

// defaultActionCount is the sample size when no amount is requested.
const defaultActionCount = 5

// ForecastProvider serves cached-or-computed forecasts.
type ForecastProvider interface {
	GetForecast(ctx context.Context, months int) (*models.ForecastResult, error)
}

// ConsequenceProvider serves the consequence list for a horizon. It never
// fails; degraded content comes back as static fallback records.
type ConsequenceProvider interface {
	GetConsequences(ctx context.Context, months int, predictions []float64) []models.ConsequenceRecord
}

// ActionSampler samples the static climate-action catalog.
type ActionSampler interface {
	Sample(n int) []models.ActionPair
}

// EmailSender delivers one contact email, reporting success as a boolean.
type EmailSender interface {
	Send(to, subject, userEmail, message string) bool
}

// HealthChecker reports storage reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CO2Handler handles the public API endpoints
type CO2Handler struct {
	forecasts    ForecastProvider
	consequences ConsequenceProvider
	actions      ActionSampler
	email        EmailSender
	health       HealthChecker
	validate     *validator.Validate
	logger       *logging.StructuredLogger
	metrics      *metrics.Collector
}

// NewCO2Handler creates a new API handler
func NewCO2Handler(
	forecasts ForecastProvider,
	consequences ConsequenceProvider,
	actions ActionSampler,
	email EmailSender,
	health HealthChecker,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *CO2Handler {
	return &CO2Handler{
		forecasts:    forecasts,
		consequences: consequences,
		actions:      actions,
		email:        email,
		health:       health,
		validate:     validator.New(),
		logger:       logger,
		metrics:      metricsCollector,
	}
}

// errorPayload is the error shape of the forecast and action endpoints.
type errorPayload struct {
	Error string `json:"error"`
}

// detailPayload is the error shape of the email endpoint.
type detailPayload struct {
	Detail string `json:"detail"`
}

// EmailRequest is the body of POST /api/email/send.
type EmailRequest struct {
	To        string `json:"to" validate:"required,email"`
	Subject   string `json:"subject"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	Message   string `json:"message"`
}

// emailResponse acknowledges a delivered contact email.
type emailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// actionsResponse is the wire shape of the action endpoints.
type actionsResponse struct {
	Actions []models.ActionPair `json:"actions"`
}

// GetForecast handles GET /api/1/forecast/{months}
func (h *CO2Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/1/forecast").Observe(duration.Seconds())
	}()

	months, err := strconv.Atoi(mux.Vars(r)["months"])
	if err != nil || months <= 0 {
		h.metrics.RecordAPIRequest("/api/1/forecast", "GET", "400")
		h.sendJSON(w, errorPayload{Error: "months must be positive"}, http.StatusBadRequest)
		return
	}

	forecast, err := h.forecasts.GetForecast(ctx, months)
	if err != nil {
		h.logger.Error(ctx, "[API_FORECAST_ERROR] Failed to produce forecast", logging.Fields{
			"months": months,
		}, err)
		h.metrics.RecordAPIError("forecast_error", "/api/1/forecast")
		h.metrics.RecordAPIRequest("/api/1/forecast", "GET", "500")
		h.sendJSON(w, errorPayload{Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	// The consequence path never fails the request; at worst it serves
	// static fallback content.
	consequences := h.consequences.GetConsequences(ctx, months, forecast.Predictions)

	h.metrics.RecordAPIRequest("/api/1/forecast", "GET", "200")
	h.sendJSON(w, models.ForecastResponse{Data: forecast, Consequences: consequences}, http.StatusOK)
}

// GetActions handles GET /api/1/actions
func (h *CO2Handler) GetActions(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordAPIRequest("/api/1/actions", "GET", "200")
	h.sendJSON(w, actionsResponse{Actions: h.actions.Sample(defaultActionCount)}, http.StatusOK)
}

// GetActionsN handles GET /api/1/actions/{n}
func (h *CO2Handler) GetActionsN(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil {
		h.metrics.RecordAPIRequest("/api/1/actions", "GET", "400")
		h.sendJSON(w, errorPayload{Error: "amount must be an integer"}, http.StatusBadRequest)
		return
	}

	// Sample clamps to [1, catalog size]; out-of-range amounts are not an
	// error.
	h.metrics.RecordAPIRequest("/api/1/actions", "GET", "200")
	h.sendJSON(w, actionsResponse{Actions: h.actions.Sample(n)}, http.StatusOK)
}

// SendEmail handles POST /api/email/send
func (h *CO2Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/email/send").Observe(duration.Seconds())
	}()

	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordAPIRequest("/api/email/send", "POST", "400")
		h.sendJSON(w, detailPayload{Detail: "invalid request body"}, http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.metrics.RecordAPIRequest("/api/email/send", "POST", "400")
		h.sendJSON(w, detailPayload{Detail: "invalid email address"}, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Subject) == "" {
		h.metrics.RecordAPIRequest("/api/email/send", "POST", "400")
		h.sendJSON(w, detailPayload{Detail: "El asunto no puede estar vacío."}, http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		h.metrics.RecordAPIRequest("/api/email/send", "POST", "400")
		h.sendJSON(w, detailPayload{Detail: "El mensaje no puede estar vacío."}, http.StatusBadRequest)
		return
	}

	if !h.email.Send(req.To, req.Subject, req.UserEmail, req.Message) {
		h.logger.Error(ctx, "[API_EMAIL_ERROR] Contact email delivery failed", logging.Fields{
			"to": req.To,
		}, nil)
		h.metrics.RecordAPIError("delivery_error", "/api/email/send")
		h.metrics.RecordAPIRequest("/api/email/send", "POST", "500")
		h.sendJSON(w, detailPayload{Detail: "Error al enviar el correo. Intenta más tarde."}, http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/email/send", "POST", "200")
	h.sendJSON(w, emailResponse{Success: true, Message: "Correo enviado exitosamente"}, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *CO2Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	code := http.StatusOK
	if err := h.health.HealthCheck(ctx); err != nil {
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{
		"status": status["status"],
	})
	h.sendJSON(w, status, code)
}

// sendJSON sends a JSON response
func (h *CO2Handler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// RegisterRoutes registers all API routes
func (h *CO2Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/1/forecast/{months}", h.GetForecast).Methods("GET")
	router.HandleFunc("/api/1/actions", h.GetActions).Methods("GET")
	router.HandleFunc("/api/1/actions/{n}", h.GetActionsN).Methods("GET")
	router.HandleFunc("/api/email/send", h.SendEmail).Methods("POST", "OPTIONS")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
