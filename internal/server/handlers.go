package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/monitor"
	"github.com/desertthunder/qfill/internal/mpd"
	"github.com/desertthunder/qfill/internal/shared"
)

// RefillHistory reads back persisted refill outcomes.
type RefillHistory interface {
	Recent(limit int) ([]models.RefillRecord, error)
}

// API serves the JSON endpoints of the web remote.
type API struct {
	client  mpd.Controller
	monitor *monitor.Monitor
	refills RefillHistory // Optional; nil disables /api/refills
	logger  *log.Logger
}

// NewAPI creates the API handler set.
func NewAPI(client mpd.Controller, m *monitor.Monitor, refills RefillHistory, logger *log.Logger) *API {
	return &API{client: client, monitor: m, refills: refills, logger: logger}
}

// Register wires every API route onto router.
func (a *API) Register(router Router) {
	router.Handle(http.MethodGet, "/api/status", http.HandlerFunc(a.handleStatus))
	router.Handle(http.MethodGet, "/api/queue", http.HandlerFunc(a.handleQueue))
	router.Handle(http.MethodPost, "/api/fill", http.HandlerFunc(a.handleFill))
	router.Handle(http.MethodGet, "/api/refills", http.HandlerFunc(a.handleRefills))
	router.Handle(http.MethodPost, "/api/player/play", a.playerAction(a.client.Play))
	router.Handle(http.MethodPost, "/api/player/pause", a.playerAction(a.client.Pause))
	router.Handle(http.MethodPost, "/api/player/next", a.playerAction(a.client.Next))
	router.Handle(http.MethodPost, "/api/player/clear", a.playerAction(a.client.ClearQueue))
	router.Handler(&autofillHandler{api: a})
}

type statusPayload struct {
	State       string  `json:"state"`
	CurrentURI  string  `json:"current_uri,omitempty"`
	Elapsed     string  `json:"elapsed,omitempty"`
	QueueLength int     `json:"queue_length"`
	Monitor     string  `json:"monitor"`
	Seconds     float64 `json:"elapsed_seconds,omitempty"`
}

func (a *API) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := a.client.Status(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	payload := statusPayload{
		State:       status.State.String(),
		CurrentURI:  status.CurrentURI,
		QueueLength: status.QueueLength,
		Monitor:     a.monitor.State().String(),
	}
	if status.State != models.StateStopped {
		payload.Elapsed = shared.FormatElapsed(status.Elapsed)
		payload.Seconds = status.Elapsed
	}

	a.writeJSON(w, http.StatusOK, payload)
}

type queueEntryPayload struct {
	URI     string `json:"uri"`
	Title   string `json:"title,omitempty"`
	Artist  string `json:"artist,omitempty"`
	Album   string `json:"album,omitempty"`
	Pos     int    `json:"pos"`
	ID      int    `json:"id"`
	Current bool   `json:"current,omitempty"`
}

func (a *API) handleQueue(w http.ResponseWriter, r *http.Request) {
	status, err := a.client.Status(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	entries, err := a.client.Queue(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	payload := make([]queueEntryPayload, len(entries))
	for i, entry := range entries {
		payload[i] = queueEntryPayload{
			URI:     entry.URI,
			Title:   entry.Title,
			Artist:  entry.Artist,
			Album:   entry.Album,
			Pos:     entry.Pos,
			ID:      entry.ID,
			Current: entry.ID >= 0 && entry.ID == status.CurrentID,
		}
	}

	a.writeJSON(w, http.StatusOK, payload)
}

// handleFill forces one refill pass. The tick runs in the background; its
// outcome arrives over the websocket stream.
func (a *API) handleFill(w http.ResponseWriter, r *http.Request) {
	go a.monitor.FillNow(context.WithoutCancel(r.Context()))
	a.writeJSON(w, http.StatusAccepted, map[string]string{"status": "requested"})
}

func (a *API) handleRefills(w http.ResponseWriter, r *http.Request) {
	if a.refills == nil {
		a.writeJSON(w, http.StatusOK, []models.RefillRecord{})
		return
	}

	records, err := a.refills.Recent(50)
	if err != nil {
		a.writeError(w, err)
		return
	}

	payload := make([]refillPayload, len(records))
	for i, record := range records {
		payload[i] = refillPayload{
			ID:        record.ID,
			CreatedAt: record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			Mode:      record.Mode.String(),
			Outcome:   record.Outcome,
			Requested: record.Requested,
			Added:     record.Added,
			Reason:    record.Reason,
			URIs:      record.URIs,
		}
	}

	a.writeJSON(w, http.StatusOK, payload)
}

type refillPayload struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	Mode      string   `json:"mode"`
	Outcome   string   `json:"outcome"`
	Requested int      `json:"requested"`
	Added     int      `json:"added"`
	Reason    string   `json:"reason,omitempty"`
	URIs      []string `json:"uris,omitempty"`
}

func (a *API) playerAction(action func(ctx context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := action(r.Context()); err != nil {
			a.writeError(w, err)
			return
		}
		a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// autofillHandler serves GET and PUT on the same path, which the method-scoped
// router registration cannot express.
type autofillHandler struct {
	api *API
}

func (h *autofillHandler) Routes() []string {
	return []string{"/api/autofill"}
}

type autofillPayload struct {
	Enabled    bool     `json:"enabled"`
	Mode       string   `json:"mode"`
	Threshold  int      `json:"threshold"`
	BatchSize  int      `json:"batch_size"`
	Genres     []string `json:"genres,omitempty"`
	SeedArtist string   `json:"seed_artist,omitempty"`
}

func (h *autofillHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *autofillHandler) get(w http.ResponseWriter) {
	cfg := h.api.monitor.Settings().Snapshot()
	h.api.writeJSON(w, http.StatusOK, autofillPayload{
		Enabled:    cfg.Enabled,
		Mode:       cfg.Mode.String(),
		Threshold:  cfg.Threshold,
		BatchSize:  cfg.BatchSize,
		Genres:     cfg.Genres,
		SeedArtist: cfg.SeedArtist,
	})
}

func (h *autofillHandler) put(w http.ResponseWriter, r *http.Request) {
	var payload autofillPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.api.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	mode, err := models.ParseMode(payload.Mode)
	if err != nil {
		h.api.writeError(w, err)
		return
	}

	err = h.api.monitor.Settings().Update(func(cfg *models.AutoFillConfig) {
		cfg.Enabled = payload.Enabled
		cfg.Mode = mode
		cfg.Threshold = payload.Threshold
		cfg.BatchSize = payload.BatchSize
		cfg.Genres = payload.Genres
		cfg.SeedArtist = payload.SeedArtist
	})
	if err != nil {
		h.api.writeError(w, err)
		return
	}

	h.get(w)
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response", "err", err)
	}
}

// writeError maps the daemon client's error taxonomy onto HTTP status codes.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrInvalidConfig), errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrConnection), errors.Is(err, shared.ErrProtocol):
		status = http.StatusBadGateway
	case errors.Is(err, shared.ErrTimeout):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed", "err", err)
	}

	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}
