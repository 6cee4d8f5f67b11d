// Package api exposes the practice engine over JSON HTTP endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/julianstephens/ruleoflife/internal/auth"
	"github.com/julianstephens/ruleoflife/internal/clock"
	"github.com/julianstephens/ruleoflife/internal/completion"
	apperrors "github.com/julianstephens/ruleoflife/internal/errors"
	"github.com/julianstephens/ruleoflife/internal/export"
	"github.com/julianstephens/ruleoflife/internal/history"
	"github.com/julianstephens/ruleoflife/internal/liturgical"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/models"
	"github.com/julianstephens/ruleoflife/internal/observability"
	"github.com/julianstephens/ruleoflife/internal/practices"
	"github.com/julianstephens/ruleoflife/internal/today"
	httptransport "github.com/julianstephens/ruleoflife/internal/transport/http"
	"github.com/julianstephens/ruleoflife/internal/verse"
)

// maxBodyBytes bounds request bodies; every body here is a small JSON object.
const maxBodyBytes = 1 << 16

// Services are the domain services the handlers call.
type Services struct {
	Clock      clock.Clock
	Resolver   liturgical.Resolver
	Verses     *verse.List
	Today      *today.Service
	Practices  *practices.Service
	Completion *completion.Service
	History    *history.Service
	Export     *export.Service
	Metrics    *observability.Metrics
}

// Handler coordinates HTTP requests with the domain services.
type Handler struct {
	svc Services
}

func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	h.handle(mux, "GET /healthz", healthz)
	mux.Handle("GET /metrics", h.svc.Metrics.Handler())

	h.handle(mux, "GET /v1/today", h.today)
	h.handle(mux, "GET /v1/practices", h.listPractices)
	h.handle(mux, "POST /v1/practices/{id}/toggle", h.toggle)
	h.handle(mux, "PUT /v1/practices/{id}/override", h.setOverride)
	h.handle(mux, "GET /v1/history", h.history)
	h.handle(mux, "GET /v1/season", h.season)
	h.handle(mux, "GET /v1/verse", h.verse)
	h.handle(mux, "PUT /v1/settings", h.setSettings)
	h.handle(mux, "GET /v1/export", h.export)
}

func (h *Handler) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, httptransport.Instrument(pattern, h.svc.Metrics, fn))
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) today(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Today.Build(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) listPractices(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeServiceError(w, apperrors.ErrUnauthenticated)
		return
	}

	var filter models.PracticeFilter
	q := r.URL.Query()
	if raw := q.Get("season"); raw != "" {
		season, err := liturgical.NormalizeSeason(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		filter.Season = season
	}
	if raw := q.Get("recurrence"); raw != "" {
		rec, err := models.ParseRecurrence(raw)
		if err != nil {
			writeServiceError(w, apperrors.Invalidf("%v", err))
			return
		}
		filter.Recurrence = rec
	}
	filter.ActiveOnly = q.Get("include_inactive") != "true"

	effective, err := h.svc.Practices.Effective(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	items := make([]PracticeView, 0, len(effective))
	for _, ep := range effective {
		items = append(items, toPracticeView(ep))
	}
	writeJSON(w, http.StatusOK, ListPracticesResponse{Practices: items})
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Completion.Toggle(r.Context(), auth.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) setOverride(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	patch, err := req.Patch()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	o, err := h.svc.Practices.SetOverride(r.Context(), auth.UserID(r.Context()), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeServiceError(w, apperrors.ErrUnauthenticated)
		return
	}

	q := r.URL.Query()
	date := q.Get("date")
	if date != "" {
		if err := clock.ValidateDate(date); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	var month history.Month
	switch raw := q.Get("month"); {
	case raw != "":
		m, err := history.ParseMonth(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		month = m
	case date != "":
		month, _ = history.MonthOf(date)
	default:
		month = history.CurrentMonth(h.svc.Clock)
	}

	view, err := h.svc.History.Month(r.Context(), userID, month, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) season(w http.ResponseWriter, r *http.Request) {
	date := h.dateParam(r)
	day, err := h.svc.Resolver.Day(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SeasonResponse{
		LiturgicalDay:  day,
		SeasonLabel:    practices.SeasonLabel(day.Season),
		PracticeSeason: liturgical.PracticeSeason(day.Season),
	})
}

func (h *Handler) verse(w http.ResponseWriter, r *http.Request) {
	date := h.dateParam(r)
	v, idx, err := h.svc.Verses.ForDate(date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerseResponse{Date: date, Index: idx, Verse: v})
}

func (h *Handler) setSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	wake := ""
	if req.WakeTime != nil {
		wake = *req.WakeTime
	}
	settings, err := h.svc.Practices.SetWakeTime(r.Context(), auth.UserID(r.Context()), wake)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Export.Build(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.svc.Export.Filename()+`"`)
	w.WriteHeader(http.StatusOK)
	if err := export.Write(w, payload); err != nil {
		logger.Error("Failed to write export", "error", err)
	}
}

// dateParam returns the date query parameter, defaulting to today.
func (h *Handler) dateParam(r *http.Request) string {
	if d := strings.TrimSpace(r.URL.Query().Get("date")); d != "" {
		return d
	}
	return h.svc.Clock.Today()
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Invalidf("request body is empty")
		}
		return apperrors.Invalidf("unable to parse body: %v", err)
	}
	return nil
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch apperrors.Kind(err) {
	case apperrors.ErrUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrDisabled, apperrors.ErrNotScheduledToday:
		return http.StatusConflict
	case apperrors.ErrInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := apperrors.Message(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		message = "Something went wrong."
	}
	writeError(w, status, apperrors.Code(err), message)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
