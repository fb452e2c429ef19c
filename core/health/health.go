package health

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/response"
)

// DefaultTimeout bounds a readiness check.
const DefaultTimeout = 5 * time.Second

// Status values of a Report.
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Report is the readiness response body.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Liveness indicates the process is running. It never checks dependencies.
func Liveness(*http.Request) response.Response {
	return response.String("ALIVE", http.StatusOK)
}

// Readiness runs every check concurrently and answers 200 with a Report
// when all pass, 503 otherwise. A non-positive timeout means DefaultTimeout.
func Readiness(log *slog.Logger, timeout time.Duration, checks map[string]Check) response.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(r *http.Request) response.Response {
		report := Run(r.Context(), timeout, checks)
		if report.Status != StatusOK {
			for name, result := range report.Checks {
				if result != StatusOK {
					log.ErrorContext(r.Context(), "readiness check failed",
						logger.Component("health"),
						logger.Key("check", name),
						logger.Key("result", result),
					)
				}
			}
			return response.JSON(report, http.StatusServiceUnavailable)
		}
		return response.JSON(report, http.StatusOK)
	}
}

// Run executes checks concurrently within timeout. A failed check does not
// cancel the others.
func Run(ctx context.Context, timeout time.Duration, checks map[string]Check) Report {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	report := Report{
		Status: StatusOK,
		Checks: make(map[string]string, len(checks)),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for name, check := range checks {
		g.Go(func() error {
			result := StatusOK
			if err := check(ctx); err != nil {
				result = err.Error()
			}

			mu.Lock()
			report.Checks[name] = result
			if result != StatusOK {
				report.Status = StatusUnavailable
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return report
}
