package service

import (
	"errors"
	"log/slog"

	"github.com/youridegraef/qash-backend-sub000/internal/metrics"
)

// succeeded collapses the outcome of an Edit or Delete into a bool.
// Every false-on-failure operation reports through here.
func succeeded(logger *slog.Logger, op string, id int, err error) bool {
	if err == nil {
		return true
	}
	metrics.MutationFailures.WithLabelValues(op).Inc()
	logger.Error(op+" failed", "id", id, "error", err, "cause", rootCause(err))
	return false
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
