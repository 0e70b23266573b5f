package coordinator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"vod-coordinator/internal/catalog"
	"vod-coordinator/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const releaseDateLayout = "02/01/2006"

// Handler exposes the control API over HTTP using go-chi.
type Handler struct {
	svc           *Service
	log           *slog.Logger
	metrics       *metrics.Metrics
	portfolioPath string
}

// NewHandler returns a Handler using the given Service, Logger, and optional
// Metrics. Metrics may be nil to disable metric recording (e.g. in tests).
// portfolioPath is the document served by the portfolio download route; it
// may be empty to disable that route's content.
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics, portfolioPath string) *Handler {
	return &Handler{svc: svc, log: log, metrics: m, portfolioPath: portfolioPath}
}

// Routes builds a standalone router with the control API routing table.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// Register adds the control API routes to an existing router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/connect_new_client_to_server", h.Connect)
	r.Get("/get_movies", h.GetMovies)
	r.Post("/get_movie_rtp_url/{client_id}/{movie_id}", h.GetMovieRTPURL)
	r.Post("/start_streaming/{client_id}", h.StartStreaming)
	r.Post("/skip_to_timestamp/{client_id}/{timestamp}", h.SkipToTimestamp)
	r.Get("/stop_streaming/{client_id}/{movie_id}", h.StopStreaming)
	r.Post("/client_exit/{client_id}", h.ClientExit)
	r.Get("/download_project_portfolio", h.DownloadPortfolio)
}

// movieEntry is the wire shape of one catalog item, matching the contract
// the desktop client expects.
type movieEntry struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	PosterRef     string  `json:"poster_location"`
	Date          string  `json:"date"`
	Rating        float64 `json:"rating"`
	Genre         string  `json:"genre"`
	LengthSeconds int     `json:"length_seconds_int"`
	LengthHHMMSS  string  `json:"length_hhmmss_string"`
	Description   string  `json:"description"`
}

// Connect handles GET /connect_new_client_to_server.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	id := h.svc.Connect()
	h.log.Info("client connected", slog.Int64("client_id", int64(id)))
	writeJSON(w, http.StatusOK, map[string]int64{"client_id": int64(id)})
}

// GetMovies handles GET /get_movies.
func (h *Handler) GetMovies(w http.ResponseWriter, r *http.Request) {
	assets, err := h.svc.Movies(r.Context())
	if err != nil {
		h.log.Error("list movies failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to list movies")
		return
	}

	entries := make([]movieEntry, 0, len(assets))
	for _, a := range assets {
		seconds, err := catalog.ParseHHMMSS(a.Length)
		if err != nil {
			h.log.Warn("movie has invalid length",
				slog.Int64("movie_id", int64(a.ID)),
				slog.String("length", a.Length))
		}
		entries = append(entries, movieEntry{
			ID:            int64(a.ID),
			Name:          a.Title,
			PosterRef:     a.PosterRef,
			Date:          a.ReleaseDate.Format(releaseDateLayout),
			Rating:        a.Rating,
			Genre:         a.Genre,
			LengthSeconds: seconds,
			LengthHHMMSS:  a.Length,
			Description:   a.Description,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// GetMovieRTPURL handles POST /get_movie_rtp_url/{client_id}/{movie_id}.
func (h *Handler) GetMovieRTPURL(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movie_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusMethodNotAllowed, ErrAssetNotFound.Error())
		return
	}

	ep, err := h.svc.PrepareEndpoint(r.Context(), clientID, catalog.AssetID(movieID))
	if err != nil {
		h.respondTransitionError(w, r, err)
		return
	}

	h.log.Info("endpoint prepared",
		slog.Int64("client_id", int64(clientID)),
		slog.Int64("movie_id", movieID),
		slog.String("rtp_url", ep.URI))
	writeJSON(w, http.StatusOK, map[string]string{"rtp_url": ep.URI})
}

// StartStreaming handles POST /start_streaming/{client_id}.
func (h *Handler) StartStreaming(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.StartStreaming(clientID); err != nil {
		h.respondTransitionError(w, r, err)
		return
	}

	h.log.Info("streaming started", slog.Int64("client_id", int64(clientID)))
	if h.metrics != nil {
		h.metrics.IncStreamsStarted()
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Successfully started streaming for client %d", clientID))
}

// SkipToTimestamp handles POST /skip_to_timestamp/{client_id}/{HH:MM:SS}.
func (h *Handler) SkipToTimestamp(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}
	timestamp := chi.URLParam(r, "timestamp")
	seconds, err := catalog.ParseHHMMSS(timestamp)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timestamp, expected HH:MM:SS")
		return
	}

	if err := h.svc.SeekTo(clientID, time.Duration(seconds)*time.Second); err != nil {
		h.respondTransitionError(w, r, err)
		return
	}

	h.log.Info("seek",
		slog.Int64("client_id", int64(clientID)),
		slog.String("timestamp", timestamp))
	if h.metrics != nil {
		h.metrics.IncSeeks()
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Successfully skipped to %s for client %d", timestamp, clientID))
}

// StopStreaming handles GET /stop_streaming/{client_id}/{movie_id}.
func (h *Handler) StopStreaming(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}
	movieID := chi.URLParam(r, "movie_id")

	if err := h.svc.StopStreaming(clientID); err != nil {
		h.respondTransitionError(w, r, err)
		return
	}

	h.log.Info("streaming stopped",
		slog.Int64("client_id", int64(clientID)),
		slog.String("movie_id", movieID))
	if h.metrics != nil {
		h.metrics.IncStreamsStopped()
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Stopped streaming movie %s for client %d", movieID, clientID))
}

// ClientExit handles POST /client_exit/{client_id}. A 201 response tells the
// client playback was stopped on the way out rather than already idle.
func (h *Handler) ClientExit(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientIDParam(w, r)
	if !ok {
		return
	}

	wasStreaming, err := h.svc.Disconnect(clientID)
	if err != nil {
		h.respondTransitionError(w, r, err)
		return
	}

	h.log.Info("client exited",
		slog.Int64("client_id", int64(clientID)),
		slog.Bool("was_streaming", wasStreaming))
	if h.metrics != nil {
		h.metrics.IncClientExits()
	}
	if wasStreaming {
		writeMessage(w, http.StatusCreated,
			fmt.Sprintf("Client %d has exited unexpectedly and stopped the movie streaming.", clientID))
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Client %d has exited", clientID))
}

// DownloadPortfolio handles GET /download_project_portfolio, serving the
// configured document as an attachment.
func (h *Handler) DownloadPortfolio(w http.ResponseWriter, r *http.Request) {
	if h.portfolioPath == "" {
		writeError(w, http.StatusNotFound, "no portfolio document configured")
		return
	}
	if _, err := os.Stat(h.portfolioPath); err != nil {
		h.log.Error("portfolio document missing", slog.String("path", h.portfolioPath))
		writeError(w, http.StatusNotFound, "portfolio document not found")
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(h.portfolioPath)))
	http.ServeFile(w, r, h.portfolioPath)
}

// clientIDParam parses the client_id URL parameter. A malformed id is
// indistinguishable from an unknown client as far as the caller is concerned.
func (h *Handler) clientIDParam(w http.ResponseWriter, r *http.Request) (SessionID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "client_id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return 0, false
	}
	return SessionID(id), true
}

// respondTransitionError maps coordinator errors to the API's status codes.
func (h *Handler) respondTransitionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAssetNotFound):
		writeError(w, http.StatusMethodNotAllowed, err.Error())
	case errors.Is(err, ErrAlreadyStreaming),
		errors.Is(err, ErrNotStreaming),
		errors.Is(err, ErrNotPrepared):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
