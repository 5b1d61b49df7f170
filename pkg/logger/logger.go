package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger
type Options struct {
	Mode       string // "production" selects JSON output
	Level      string
	FileEnable bool
	Filename   string
}

// New builds a zap logger. With FileEnable the output is teed to a rotating
// JSON file and the console. Console output goes to stderr so command
// output on stdout stays clean.
func New(opts Options) (*zap.Logger, error) {
	var zapConfig zap.Config
	if opts.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	zapConfig.OutputPaths = []string{"stderr"}

	if !opts.FileEnable {
		return zapConfig.Build(zap.AddCaller())
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   false,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(lumberJackLogger),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// Init builds the logger and installs it as the zap global
func Init(opts Options) (*zap.Logger, error) {
	logger, err := New(opts)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
