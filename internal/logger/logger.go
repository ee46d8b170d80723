package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level              string                 `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format             string                 `mapstructure:"format" validate:"omitempty,oneof=json console"`
	OutputTarget       string                 `mapstructure:"output_target" validate:"omitempty,oneof=stdout stderr"`
	TimeField          string                 `mapstructure:"time_field"`
	TimeFormat         string                 `mapstructure:"time_format" validate:"omitempty,oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName        string                 `mapstructure:"service_name"`
	ServiceVersion     string                 `mapstructure:"service_version"`
	Env                string                 `mapstructure:"env" validate:"omitempty,oneof=dev test staging prod"`
	WithCaller         bool                   `mapstructure:"with_caller"`
	Stacktrace         bool                   `mapstructure:"stacktrace"`
	StacktraceMinLevel string                 `mapstructure:"stacktrace_min_level" validate:"omitempty,oneof=debug info warn error fatal panic"`
	DebugFile          string                 `mapstructure:"debug_file"`
	Fields             map[string]interface{} `mapstructure:"fields"`
}

// timeFormats translates config names into zerolog layouts.
var timeFormats = map[string]string{
	"rfc3339":     "2006-01-02T15:04:05Z07:00",
	"rfc3339nano": "2006-01-02T15:04:05.999999999Z07:00",
	"unix":        zerolog.TimeFormatUnix,
	"unix_ms":     zerolog.TimeFormatUnixMs,
}

func New(logg *LoggerConfig) (zerolog.Logger, error) {
	logg.setDefaults()

	if err := validator.New().Struct(logg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFieldName = logg.TimeField
	zerolog.TimeFieldFormat = timeFormats[logg.TimeFormat]

	logger := zerolog.New(logg.writer()).
		Level(level).
		With().
		Timestamp().
		Str("service", logg.ServiceName).
		Str("version", logg.ServiceVersion).
		Str("env", logg.Env).
		Logger()

	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if logg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(logg.Fields) > 0 {
		logger = logger.With().Fields(logg.Fields).Logger()
	}

	// global level must follow the instance level, otherwise package-level log.* calls leak
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

// writer picks the sink: JSON to the configured stream for prod-like envs,
// a console writer for dev, tee'd into DebugFile when debugging.
func (c *LoggerConfig) writer() io.Writer {
	var out io.Writer = os.Stdout
	if c.OutputTarget == "stderr" {
		out = os.Stderr
	}
	if c.Format != "console" {
		return out
	}

	console := zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormats[c.TimeFormat]}
	if (c.Level != "debug" && c.Level != "trace") || c.DebugFile == "" {
		return console
	}
	// don't crash if the debug file is unavailable, console is enough
	if err := os.MkdirAll(filepath.Dir(c.DebugFile), 0o755); err != nil {
		return console
	}
	file, err := os.OpenFile(c.DebugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return console
	}
	return zerolog.MultiLevelWriter(console, file)
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	dev := c.Env == "dev"

	if c.Level == "" {
		if dev {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if dev {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.OutputTarget == "" {
		if dev {
			c.OutputTarget = "stderr"
		} else {
			c.OutputTarget = "stdout"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if dev {
		c.WithCaller = true
		if c.DebugFile == "" {
			c.DebugFile = "logs/debug.log"
		}
	} else {
		c.Stacktrace = true
	}
	if c.StacktraceMinLevel == "" {
		c.StacktraceMinLevel = "error"
	}
	if c.ServiceName == "" {
		c.ServiceName = "domino-league-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if c.Fields == nil {
		c.Fields = make(map[string]interface{})
	}
}
