package ingest

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nicktill/covexport/pkg/config"
)

// NewRouter wires the intake endpoints
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc(config.SeriesPath, h.HandleSeries).Methods(http.MethodPost)
	r.HandleFunc(config.ValidatePath, h.HandleValidate).Methods(http.MethodGet)

	r.HandleFunc("/v1/submissions", h.HandleSubmissions).Methods(http.MethodGet)
	r.HandleFunc("/v1/series", h.HandleQuery).Methods(http.MethodGet)
	r.HandleFunc("/v1/stats", h.HandleStats).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
