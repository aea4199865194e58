package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named sugared zap logger.
type Logger struct {
	*zap.SugaredLogger
}

type Config struct {
	Level       string
	Development bool
}

var (
	root   *zap.Logger
	rootMu sync.RWMutex
)

// Init replaces the root logger every named logger derives from.
func Init(conf Config) error {
	zconf := zap.NewProductionConfig()
	if conf.Development {
		zconf = zap.NewDevelopmentConfig()
	}
	if conf.Level != "" {
		level, err := zapcore.ParseLevel(conf.Level)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		zconf.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := zconf.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	rootMu.Lock()
	root = l
	rootMu.Unlock()
	return nil
}

func MustInit(conf Config) {
	if err := Init(conf); err != nil {
		panic(err)
	}
}

func Named(name string) (*Logger, error) {
	rootMu.RLock()
	l := root
	rootMu.RUnlock()

	if l == nil {
		if err := Init(Config{}); err != nil {
			return nil, err
		}
		rootMu.RLock()
		l = root
		rootMu.RUnlock()
	}
	return &Logger{SugaredLogger: l.Named(name).Sugar()}, nil
}

func MustNamed(name string) *Logger {
	l, err := Named(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Unwrap() *zap.SugaredLogger {
	return l.SugaredLogger
}

// Reflect logs v through its json representation.
func (l *Logger) Reflect(key string, v any) zap.Field {
	return zap.Reflect(key, v)
}

func Sync() {
	rootMu.RLock()
	defer rootMu.RUnlock()
	if root != nil {
		_ = root.Sync()
	}
}
