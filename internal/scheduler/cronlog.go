package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// cronLogger adapts the global zerolog logger to cron.Logger.
type cronLogger struct{}

var _ cron.Logger = cronLogger{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	withFields(log.Debug(), keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	withFields(log.Error().Err(err), keysAndValues).Msg("cron: " + msg)
}

func withFields(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			e = e.Interface(key, keysAndValues[i+1])
		}
	}
	return e
}
