package ports

import (
	"time"

	"go.trai.ch/yaac/internal/core/domain"
)

// MetricsRecorder receives observability events from the pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type MetricsRecorder interface {
	// IncResolve counts one resolution by outcome.
	IncResolve(outcome domain.Outcome)
	// ObserveCompile records one compile of the given dialect.
	ObserveCompile(dialect string, d time.Duration, err error)
}
