package handlers

import (
	"errors"
	"io"
	"sync"

	"github.com/gin-gonic/gin"

	apperrors "continuum/internal/errors"
	"continuum/internal/logger"
)

// streamWatch serves a live list as server-sent events. Every delivery from
// watch replaces the pending one, so a slow client receives the latest list
// rather than a backlog. The stream ends when the client disconnects.
func streamWatch[T, R any](c *gin.Context, event string, watch func(func([]T, error)) func(), render func([]T) R) {
	var (
		mu      sync.Mutex
		latest  []T
		lastErr error
	)
	notify := make(chan struct{}, 1)

	stop := watch(func(items []T, err error) {
		mu.Lock()
		latest, lastErr = items, err
		mu.Unlock()
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	done := c.Request.Context().Done()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-done:
			return false
		case <-notify:
		}

		mu.Lock()
		items, err := latest, lastErr
		mu.Unlock()

		if err != nil {
			logger.Get().Errorw("live query failed", "event", event, "error", err.Error())
			detail := ErrorDetail{Code: apperrors.ErrInternalServer.Code, Message: apperrors.ErrInternalServer.Message}
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				detail = ErrorDetail{Code: appErr.Code, Message: appErr.Message}
			}
			c.SSEvent("error", detail)
			return true
		}
		c.SSEvent(event, render(items))
		return true
	})
}
