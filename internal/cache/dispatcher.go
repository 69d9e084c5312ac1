package cache

import (
	"context"
	"log/slog"
)

// Dispatcher wraps every create/update/delete/move call with the two-phase
// protocol: run the mutation, and only once it has settled successfully,
// invalidate the affected cache keys (exactly once) and report the outcome.
// On failure the cache is left untouched and the error is surfaced to the
// caller with its underlying cause.
type Dispatcher struct {
	cache    *QueryCache
	notifier Notifier
	logger   *slog.Logger
}

// NewDispatcher creates a mutation dispatcher around the given cache
func NewDispatcher(cache *QueryCache, notifier Notifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// Dispatch runs fn and, on success, invalidates every listed key prefix.
// op names the mutation for notifications ("folder created", "product moved").
func (d *Dispatcher) Dispatch(ctx context.Context, op string, affectedKeys []string, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		d.notifier.Error(op, err)
		return err
	}

	dropped := 0
	for _, key := range affectedKeys {
		dropped += d.cache.Invalidate(key)
	}

	d.logger.Debug("mutation settled",
		"op", op,
		"invalidated_keys", len(affectedKeys),
		"dropped_entries", dropped,
	)
	d.notifier.Success(op)
	return nil
}

// Notifier surfaces mutation outcomes to the user (the toast bar in the
// original UI). The server-side implementation logs them; the response body
// carries the same information to the client.
type Notifier interface {
	Success(op string)
	Error(op string, err error)
}

// LogNotifier implements Notifier on slog
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Success(op string) {
	n.Logger.Info("mutation succeeded", "op", op)
}

func (n *LogNotifier) Error(op string, err error) {
	n.Logger.Warn("mutation failed", "op", op, "error", err)
}
