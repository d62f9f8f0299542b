package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"employee-insights/insights-svc/internal/domain"
	"employee-insights/insights-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	ServiceName = "insights-svc"
	Greeting    = "Employee Insights API v1.0"

	msgInternalError    = "Internal server error"
	msgTooManyRequests  = "Too many requests"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
)

type Handler struct {
	Insights service.InsightServiceInterface
	Log      logrus.FieldLogger
}

func NewHandler(insights service.InsightServiceInterface, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Insights: insights, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.greeting).Methods("GET")
	r.HandleFunc("/health", h.health).Methods("GET")
	r.HandleFunc("/api/insights/summary", h.getSummary).Methods("GET")
	r.HandleFunc("/api/insights/dashboard", h.getDashboard).Methods("GET")
	r.HandleFunc("/api/insights/top-positive", h.getTopPositive).Methods("GET")
	r.HandleFunc("/api/insights/top-negative", h.getTopNegative).Methods("GET")
	r.HandleFunc("/api/insights/lookups/trending", h.getTrending).Methods("GET")
	r.HandleFunc("/api/insights/{word}/qrcode", h.getQRCode).Methods("GET")
	r.HandleFunc("/api/insights/{word}", h.getByWord).Methods("GET")
	r.HandleFunc("/api/insights/", h.getByWord).Methods("GET")
}

func (h *Handler) greeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(Greeting))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if err := h.Insights.Health(r.Context()); err != nil {
		h.logger(r).WithError(err).Error("Health check failed")
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]string{
		"status":    status,
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Insights.GetSummary(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Insights.GetDashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getTopPositive(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Insights.GetTopPositive(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) getTopNegative(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Insights.GetTopNegative(r.Context())
	h.respond(w, r, resp, err)
}

func (h *Handler) getByWord(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Insights.GetByWord(r.Context(), mux.Vars(r)["word"])
	h.respond(w, r, resp, err)
}

func (h *Handler) getTrending(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all"
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	resp, err := h.Insights.GetTrendingLookups(r.Context(), period, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Insights.GetWordQRCode(mux.Vars(r)["word"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, resp domain.APIResponse[[]domain.InsightSummary], err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, service.ErrWordRequired):
		writeJSON(w, http.StatusBadRequest, resp)
	default:
		h.fail(w, r, err)
	}
}

// fail writes the error envelope. Backend details are logged, never returned.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrWordRequired):
		writeJSON(w, http.StatusBadRequest, domain.Fail([]domain.InsightSummary{}, service.MsgWordRequired))
	default:
		h.logger(r).WithError(err).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, domain.Fail([]domain.InsightSummary{}, msgInternalError))
	}
}

func (h *Handler) logger(r *http.Request) logrus.FieldLogger {
	return h.Log.WithFields(logrus.Fields{
		"request_id": RequestIDFrom(r.Context()),
		"path":       r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
