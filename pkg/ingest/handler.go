package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/nicktill/covexport/pkg/config"
	"github.com/nicktill/covexport/pkg/httpx"
	"github.com/nicktill/covexport/pkg/sdk/metrics"
	"github.com/nicktill/covexport/pkg/sdk/transport"
	"github.com/nicktill/covexport/pkg/storage"
)

// Handler serves the series intake endpoints
type Handler struct {
	store   storage.Storage
	apiKeys map[string]struct{}
	now     func() time.Time
}

// NewHandler creates a new intake handler.
// Without apiKeys any non-empty credential is accepted.
func NewHandler(store storage.Storage, apiKeys ...string) *Handler {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	return &Handler{
		store:   store,
		apiKeys: keys,
		now:     time.Now,
	}
}

// SeriesResponse is returned for accepted submissions
type SeriesResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Count  int    `json:"count"`
}

// ValidateResponse is returned by the credential check
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// HandleSeries handles POST /api/v1/series
func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		httpx.RespondErrors(w, http.StatusForbidden)
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.RespondErrors(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		httpx.RespondErrors(w, http.StatusBadRequest, fmt.Sprintf("Unable to read payload: %v", err))
		return
	}

	var payload metrics.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		httpx.RespondErrors(w, http.StatusBadRequest, fmt.Sprintf("Payload is not in the expected format: %v", err))
		return
	}

	if len(payload.Series) > MaxSeriesPerRequest {
		httpx.RespondErrors(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("%v: got %d", ErrTooManySeries, len(payload.Series)))
		return
	}

	// Reject the whole submission if any series is invalid
	for i, s := range payload.Series {
		if err := ValidateSeries(s); err != nil {
			httpx.RespondErrors(w, http.StatusBadRequest, fmt.Sprintf("invalid series %d: %v", i, err))
			return
		}
	}

	sub := storage.Submission{
		ID:         uuid.NewString(),
		ReceivedAt: h.now().UTC(),
		Digest:     fmt.Sprintf("%016x", xxhash.Sum64(body)),
		Series:     payload.Series,
	}
	if err := h.store.Write(r.Context(), sub); err != nil {
		log.Printf("❌ Failed to store submission: %v", err)
		httpx.RespondErrors(w, http.StatusInternalServerError, "failed to store submission")
		return
	}

	log.Printf("📥 Accepted %d series (submission %s, digest %s)", len(payload.Series), sub.ID, sub.Digest)
	httpx.RespondJSON(w, http.StatusAccepted, SeriesResponse{
		Status: "ok",
		ID:     sub.ID,
		Count:  len(payload.Series),
	})
}

// HandleValidate handles GET /api/v1/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		httpx.RespondErrors(w, http.StatusForbidden)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

// HandleSubmissions handles GET /v1/submissions
func (h *Handler) HandleSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.Submissions(r.Context())
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": subs,
		"count":       len(subs),
	})
}

// HandleQuery handles GET /v1/series?metric=...&tag=...&limit=...
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := storage.QueryRequest{
		MetricNames: q["metric"],
		Tags:        q["tag"],
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			httpx.RespondErrors(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", limit))
			return
		}
		req.Limit = n
	}

	series, err := h.store.Query(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err)
		return
	}
	if series == nil {
		series = []metrics.Series{}
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"series": series,
		"count":  len(series),
	})
}

// HandleStats handles GET /v1/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, stats)
}

// HandleHealth handles GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) authorized(r *http.Request) bool {
	key := r.Header.Get(transport.APIKeyHeader)
	if key == "" {
		return false
	}
	if len(h.apiKeys) == 0 {
		return true
	}
	_, ok := h.apiKeys[key]
	return ok
}

// readBody returns the uncompressed request body
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	var reader io.Reader = http.MaxBytesReader(w, r.Body, config.IntakeMaxBodyBytes)

	switch r.Header.Get("Content-Encoding") {
	case "", "identity":
	case "gzip":
		zr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("invalid gzip body: %w", err)
		}
		defer zr.Close()
		reader = io.LimitReader(zr, config.IntakeMaxBodyBytes)
	default:
		return nil, fmt.Errorf("unsupported Content-Encoding %q", r.Header.Get("Content-Encoding"))
	}

	return io.ReadAll(reader)
}
