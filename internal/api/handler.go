package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"horario/internal/observability"
	"horario/internal/schedule"
	"horario/internal/session"
)

// Maximum accepted body for imports. Documents are tiny; anything larger
// is not a schedule.
const maxImportBytes = 1 << 20

type Handler struct {
	sessions         *session.Registry
	log              *slog.Logger
	defaultStartHour int
	defaultEndHour   int
}

func NewHandler(sessions *session.Registry, log *slog.Logger, defaultStartHour, defaultEndHour int) *Handler {
	return &Handler{
		sessions:         sessions,
		log:              log,
		defaultStartHour: defaultStartHour,
		defaultEndHour:   defaultEndHour,
	}
}

// --- REST API Handlers ---

// AddActivity handles POST /api/activities
func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	svc := h.session(w, r)

	var input schedule.AddInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	activity, err := svc.Add(input)
	if errors.Is(err, schedule.ErrInvalidRange) {
		observability.RecordRangeRejection()
		h.jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		h.log.Warn("rejected activity input", "error", err)
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	observability.RecordActivityAdded()
	h.jsonResponse(w, activity, http.StatusCreated)
}

// ListActivities handles GET /api/activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	svc := h.session(w, r)
	h.jsonResponse(w, svc.List(), http.StatusOK)
}

// ClearActivities handles DELETE /api/activities (the clear trigger).
func (h *Handler) ClearActivities(w http.ResponseWriter, r *http.Request) {
	svc := h.session(w, r)
	svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Grid handles GET /api/grid?start_hour=&end_hour=
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	svc := h.session(w, r)

	q := r.URL.Query()
	startHour := clamp(h.parseInt(q.Get("start_hour"), h.defaultStartHour), schedule.MinStartHour, schedule.MaxStartHour)
	endHour := clamp(h.parseInt(q.Get("end_hour"), h.defaultEndHour), schedule.MinEndHour, schedule.MaxEndHour)

	observability.RecordGridRendered()
	h.jsonResponse(w, svc.Grid(startHour, endHour), http.StatusOK)
}

// Export handles GET /api/export and triggers the horario.json download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	svc := h.session(w, r)

	data, err := svc.Export()
	if err != nil {
		h.log.Error("failed to export schedule", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}

	observability.RecordExportServed()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+schedule.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import handles POST /api/import, replacing the session's schedule with
// a previously exported document.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	svc := h.session(w, r)

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		h.jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := svc.Import(data); err != nil {
		h.log.Warn("rejected schedule import", "error", err)
		h.jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	h.jsonResponse(w, svc.List(), http.StatusOK)
}

// --- Helper methods ---

// session resolves the caller's schedule service, creating a fresh seeded
// session (and setting the cookie) on first contact or after expiry.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *schedule.Service {
	if c, err := r.Cookie(session.CookieName); err == nil {
		if svc, ok := h.sessions.Get(c.Value); ok {
			return svc
		}
	}

	id, svc := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return svc
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *Handler) parseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
