package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prm groups Logger's parameters.
type Prm struct {
	level    zapcore.Level
	encoding string
}

const (
	// EncodingConsole is a human-readable output format.
	EncodingConsole = "console"
	// EncodingJSON is a machine-readable output format.
	EncodingJSON = "json"
)

// SetLevelString sets the minimum logging level. Default is "info".
//
// Returns an error if s is not a string representation of a
// supporting logging level.
//
// Supports at least the following levels (in ascending order of
// priority): "debug", "info", "warn", "error".
func (p *Prm) SetLevelString(s string) error {
	return p.level.UnmarshalText([]byte(s))
}

// SetEncoding sets the output format of the log records. Default is
// EncodingConsole.
func (p *Prm) SetEncoding(s string) error {
	switch e := strings.ToLower(s); e {
	case "", EncodingConsole:
		p.encoding = EncodingConsole
	case EncodingJSON:
		p.encoding = EncodingJSON
	default:
		return fmt.Errorf("unsupported log encoding %q", s)
	}
	return nil
}

// NewLogger constructs zap.Logger from the provided parameters.
//
// Logger is built from production logging configuration with ISO8601
// timestamps, stack traces are attached to fatal records only.
func NewLogger(prm *Prm) (*zap.Logger, error) {
	if prm == nil {
		prm = new(Prm)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(prm.level)
	c.Encoding = prm.encoding
	if c.Encoding == "" {
		c.Encoding = EncodingConsole
	}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return l, nil
}
