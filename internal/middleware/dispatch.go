package middleware

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Serialize runs handlers one at a time. Updates arrive on many goroutines
// but card and practice state assume a single event loop.
func Serialize(mu sync.Locker) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			mu.Lock()
			defer mu.Unlock()
			return next(c)
		}
	}
}

// Logger logs every update with its duration and turns handler panics into
// errors
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			start := time.Now()

			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("handler panic: %v", r)
					logger.Error("Recovered from handler panic", zap.Any("panic", r))
				}

				fields := []zap.Field{
					zap.Duration("duration", time.Since(start)),
				}
				if chat := c.Chat(); chat != nil {
					fields = append(fields, zap.Int64("chat_id", chat.ID))
				}
				if cb := c.Callback(); cb != nil {
					fields = append(fields, zap.String("callback", cb.Unique))
				}
				if err != nil {
					logger.Warn("Update handled with error", append(fields, zap.Error(err))...)
					return
				}
				logger.Debug("Update handled", fields...)
			}()

			return next(c)
		}
	}
}
