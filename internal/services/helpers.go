package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "continuum/internal/errors"
	"continuum/internal/live"
)

// clock returns the current time in UTC. Stored timestamps are always UTC
// so text-encoded SQLite columns sort chronologically.
func clock() time.Time {
	return time.Now().UTC()
}

// lookupError maps a gorm lookup failure to notFound or a persistence error.
func lookupError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrPersistence, err)
}

// watch registers fn on topic, then delivers the current list once. Every
// later publish on topic re-runs list and delivers the fresh result. fn
// runs on the goroutine that committed the change and must not block.
func watch[T any](feed *live.Feed, topic live.Topic, list func() ([]T, error), fn func([]T, error)) func() {
	deliver := func() {
		items, err := list()
		fn(items, err)
	}
	stop := feed.Subscribe(topic, deliver)
	deliver()
	return stop
}
