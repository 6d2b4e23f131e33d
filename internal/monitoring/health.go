package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const maxHealthErrors = 10

// HealthChecker tracks active and finished runs and the most recent run errors
type HealthChecker struct {
	mu           sync.RWMutex
	startTime    time.Time
	activeRuns   int
	finishedRuns int
	lastFinished time.Time
	errors       []string
}

// HealthStatus is the JSON body served on /health
type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	ActiveRuns   int       `json:"active_runs"`
	FinishedRuns int       `json:"finished_runs"`
	LastFinished time.Time `json:"last_finished"`
	Uptime       string    `json:"uptime"`
	Errors       []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates an idle health checker
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		errors:    make([]string, 0),
	}
}

// RunStarted marks a run as in progress
func (h *HealthChecker) RunStarted() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activeRuns++
}

// RunFinished marks a run as done, keeping the most recent errors
func (h *HealthChecker) RunFinished(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.activeRuns > 0 {
		h.activeRuns--
	}
	h.finishedRuns++
	h.lastFinished = time.Now()
	if err != nil {
		h.errors = append(h.errors, err.Error())
		if len(h.errors) > maxHealthErrors {
			h.errors = h.errors[len(h.errors)-maxHealthErrors:]
		}
	}
}

// Status returns a snapshot of the current health
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.activeRuns == 0 && h.finishedRuns == 0 {
		status = "idle"
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
	}

	errs := make([]string, len(h.errors))
	copy(errs, h.errors)

	return HealthStatus{
		Status:       status,
		Timestamp:    time.Now(),
		ActiveRuns:   h.activeRuns,
		FinishedRuns: h.finishedRuns,
		LastFinished: h.lastFinished,
		Uptime:       time.Since(h.startTime).String(),
		Errors:       errs,
	}
}

// ServeHTTP writes the current status as JSON; unhealthy is reported with a 500
func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	if health.Status == "unhealthy" {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(health)
}
