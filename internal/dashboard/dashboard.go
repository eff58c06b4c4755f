// Package dashboard serves a read-only HTTP view of simulation results:
// run summary, per-day results, and price suggestions as JSON, plus
// Prometheus metrics. It observes the run through a ResultStore fed by an
// engine day listener; nothing served here can mutate simulation state.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/signalsfoundry/lodging-simulator/internal/logging"
	"github.com/signalsfoundry/lodging-simulator/internal/observability"
	"github.com/signalsfoundry/lodging-simulator/model"
)

// ResultStore is the thread-safe snapshot of run output the dashboard reads
// from. The engine goroutine writes through the Set*/Append methods; HTTP
// handlers only read.
type ResultStore struct {
	mu          sync.RWMutex
	summary     *model.RunSummary
	days        []model.DayResult
	byDate      map[string]int
	suggestions []model.PriceSuggestion
}

// NewResultStore returns an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{byDate: make(map[string]int)}
}

// AppendDay records one finished day. Shaped to plug straight into
// SimulationEngine.RegisterDayListener.
func (s *ResultStore) AppendDay(day model.DayResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byDate[day.Date.Format("2006-01-02")] = len(s.days)
	s.days = append(s.days, day)
}

// SetSummary publishes the completed run summary.
func (s *ResultStore) SetSummary(summary model.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
}

// SetSuggestions publishes the latest price suggestions.
func (s *ResultStore) SetSuggestions(suggestions []model.PriceSuggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = append([]model.PriceSuggestion(nil), suggestions...)
}

func (s *ResultStore) snapshotDays() []model.DayResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.DayResult(nil), s.days...)
}

func (s *ResultStore) dayByDate(date string) (model.DayResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byDate[date]
	if !ok {
		return model.DayResult{}, false
	}
	return s.days[idx], true
}

// Server is the read-only HTTP surface.
type Server struct {
	store     *ResultStore
	collector *observability.SimCollector
	log       logging.Logger
}

// NewServer wires the dashboard. The collector may be nil, in which case
// /metrics serves the default registry.
func NewServer(store *ResultStore, collector *observability.SimCollector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{store: store, collector: collector, log: log}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", s.handleSummary).Methods(http.MethodGet)
	r.HandleFunc("/api/days", s.handleDays).Methods(http.MethodGet)
	r.HandleFunc("/api/days/{date}", s.handleDay).Methods(http.MethodGet)
	r.HandleFunc("/api/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	r.Handle("/metrics", s.collector.Handler()).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	summary := s.store.summary
	s.store.mu.RUnlock()
	if summary == nil {
		s.writeError(w, http.StatusNotFound, "run not finished yet")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.snapshotDays())
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	day, ok := s.store.dayByDate(date)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no simulated day for date "+date)
		return
	}
	s.writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	s.store.mu.RLock()
	suggestions := append([]model.PriceSuggestion(nil), s.store.suggestions...)
	s.store.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Warn(context.Background(), "dashboard: encode response failed", logging.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
