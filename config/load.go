package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

func init() {
	// durations are accepted both as Go duration strings ("1m30s") and as plain
	// nanoseconds
	jsoniter.RegisterTypeDecoderFunc("time.Duration", func(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
		switch iter.WhatIsNext() {
		case jsoniter.StringValue:
			d, err := time.ParseDuration(iter.ReadString())
			if err != nil {
				iter.ReportError("decode time.Duration", err.Error())
				return
			}

			*(*time.Duration)(ptr) = d
		case jsoniter.NumberValue:
			*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
		default:
			iter.Skip()
			iter.ReportError("decode time.Duration", "must be either a string or a number")
		}
	})
}

// Load reads a JSON document and applies it over Default(). Omitted keys keep their
// default values, unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse is the same as Load, but for in-memory documents.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, cfg.Validate()
}

var (
	ErrNonPositive = errors.New("must be positive")
	ErrNegative    = errors.New("must not be negative")
)

// Validate reports the first setting, that can't be used.
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"NET.ReadBufferSize", c.NET.ReadBufferSize},
		{"Lines.MaxLength", c.Lines.MaxLength},
		{"Lines.MaxNumber", c.Lines.MaxNumber},
		{"Lines.HeadSize.Maximal", c.Lines.HeadSize.Maximal},
		{"Files.ChunkSize", c.Files.ChunkSize},
	}

	for _, setting := range positive {
		if setting.value <= 0 {
			return fmt.Errorf("config: %s %w", setting.name, ErrNonPositive)
		}
	}

	switch {
	case c.NET.MaxConnections < 0:
		return fmt.Errorf("config: NET.MaxConnections %w", ErrNegative)
	case c.NET.ReadTimeout < 0:
		return fmt.Errorf("config: NET.ReadTimeout %w", ErrNegative)
	case c.NET.WriteTimeout < 0:
		return fmt.Errorf("config: NET.WriteTimeout %w", ErrNegative)
	case c.Lines.HeadSize.Default < 0:
		return fmt.Errorf("config: Lines.HeadSize.Default %w", ErrNegative)
	}

	return nil
}
