package ratelimit

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Decision is the admission verdict for one submission attempt. When denied,
// RemainingMinutes is the rounded-up wait until the oldest in-window
// submission ages out.
type Decision struct {
	Allowed          bool
	RemainingMinutes int
}

// windowState is the persisted shape: submission instants in epoch millis.
type windowState struct {
	Timestamps []int64 `json:"timestamps"`
}

// Limiter is a sliding-window submission counter over a pluggable store.
// Any error reading or decoding the stored state fails open: availability
// wins over strict abuse prevention for a low-stakes public form. The
// failure is logged so operators can spot storage problems.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

type Option func(*Limiter)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

func New(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{store: store, limit: limit, window: window, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check reports whether another submission under key may proceed. It does
// not record anything; call Record once the submission succeeds.
func (l *Limiter) Check(key string) Decision {
	if l.limit <= 0 {
		return Decision{Allowed: true}
	}

	stamps, ok := l.load(key)
	if !ok {
		return Decision{Allowed: true}
	}

	now := l.now()
	inWindow := l.filter(stamps, now)
	if len(inWindow) < l.limit {
		return Decision{Allowed: true}
	}

	oldest := time.UnixMilli(inWindow[0])
	wait := oldest.Add(l.window).Sub(now)
	minutes := int((wait + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return Decision{Allowed: false, RemainingMinutes: minutes}
}

// Record appends the current instant to the stored window, dropping entries
// that already aged out. Store failures are logged and otherwise ignored.
func (l *Limiter) Record(key string) {
	now := l.now()
	stamps, _ := l.load(key)
	stamps = append(l.filter(stamps, now), now.UnixMilli())

	raw, err := json.Marshal(windowState{Timestamps: stamps})
	if err != nil {
		slog.Warn("rate limit state encode failed", "key", key, "err", err)
		return
	}
	if err := l.store.Set(key, raw); err != nil {
		slog.Warn("rate limit state write failed", "key", key, "err", err)
	}
}

// Clear drops all recorded submissions for key.
func (l *Limiter) Clear(key string) {
	if err := l.store.Delete(key); err != nil {
		slog.Warn("rate limit state delete failed", "key", key, "err", err)
	}
}

// load reads the stored window. The second return is false only on a
// fail-open condition (read or parse error).
func (l *Limiter) load(key string) ([]int64, bool) {
	raw, found, err := l.store.Get(key)
	if err != nil {
		slog.Warn("rate limit state read failed, failing open", "key", key, "err", err)
		return nil, false
	}
	if !found {
		return nil, true
	}

	var state windowState
	if err := json.Unmarshal(raw, &state); err != nil {
		slog.Warn("rate limit state corrupted, failing open", "key", key, "err", err)
		return nil, false
	}
	return state.Timestamps, true
}

// filter keeps timestamps inside the trailing window, oldest first.
func (l *Limiter) filter(stamps []int64, now time.Time) []int64 {
	cutoff := now.Add(-l.window).UnixMilli()
	kept := make([]int64, 0, len(stamps))
	for _, ts := range stamps {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	return kept
}
