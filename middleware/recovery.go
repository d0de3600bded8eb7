package middleware

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"bars_clickhouse/utils"
)

var (
	circuitBreaker *gobreaker.CircuitBreaker
	once           sync.Once
)

func init() {
	once.Do(func() {
		circuitBreaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "clickhouse-breaker",
			MaxRequests: 3,
			Interval:    10 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				utils.Logger.Infow("Circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String())
			},
		})
	})
}

// WithCircuitBreaker runs a storage operation through the shared breaker.
func WithCircuitBreaker(ctx context.Context, operation string, fn func() error) error {
	_, err := circuitBreaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err != nil {
		utils.Error(err, "Operation rejected or failed", "operation", operation)
	}
	return err
}

// RecoverMiddleware logs panics from a job function instead of crashing the
// whole batch process.
func RecoverMiddleware(next func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			utils.Logger.Errorw("Panic recovered",
				"error", r,
				"stack", string(stack))
		}
	}()
	next()
}
