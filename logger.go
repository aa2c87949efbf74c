package reveal

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig selects console verbosity: "none", "normal" (info and up) or
// "debug".
type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c LoggingConfig) validate() error {
	switch c.Level {
	case "", "none", "normal", "debug":
		return nil
	}
	return fmt.Errorf("logging: unknown level %q", c.Level)
}

// Prepare returns a console logger for the configured level. Errors go to
// stderr, everything else to stdout.
func (c LoggingConfig) Prepare() (*zap.Logger, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.Level == "none" {
		return zap.NewNop(), nil
	}

	floor := zapcore.InfoLevel
	if c.Level == "debug" {
		floor = zapcore.DebugLevel
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(ec)

	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= floor && lvl < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.Lock(os.Stderr), high),
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), low),
	)
	return zap.New(core).Named("reveal"), nil
}
