package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger adapts zerolog.Logger to pgx's tracelog interface.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

// Log maps pgx levels to zerolog. SQL text and args are only attached at trace level.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
		if sql, ok := data["sql"].(string); ok {
			event = event.Str("sql", sql)
			delete(data, "sql")
		}
		if args, ok := data["args"]; ok {
			event = event.Interface("args", args)
			delete(data, "args")
		}
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	case tracelog.LogLevelError:
		event = l.logger.Error()
	default:
		event = l.logger.Info().Str("pgx_log_level", level.String())
	}
	if len(data) > 0 {
		event = event.Fields(data)
	}
	event.Msg(msg)
}

// traceLevel picks the pgx trace level matching the logger's verbosity.
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	switch {
	case level <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case level <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case level <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case level <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
