// Package envutil reads typed configuration values from environment variables.
package envutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNotDirectory is returned by Dir when the path exists but isn't a directory.
var ErrNotDirectory = errors.New("not a directory")

func get(key string) Reader[string] {
	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

func apply[T any](rdr Reader[T], opts []Option[T]) Reader[T] {
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// String returns a Reader for the given environment variable key.
func String(key string, opts ...Option[string]) Reader[string] {
	return apply(get(key), opts)
}

// Bool parses the variable with strconv.ParseBool.
func Bool(key string, opts ...Option[bool]) Reader[bool] {
	return apply(Map(get(key), func(s string) (bool, error) {
		return strconv.ParseBool(strings.TrimSpace(s))
	}), opts)
}

// Int parses the variable as a base-10 integer.
func Int(key string, opts ...Option[int]) Reader[int] {
	return apply(Map(get(key), func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	}), opts)
}

// Duration parses the variable with time.ParseDuration.
func Duration(key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	return apply(Map(get(key), func(s string) (time.Duration, error) {
		return time.ParseDuration(strings.TrimSpace(s))
	}), opts)
}

// SlogLevel parses the variable as a slog level name ("debug", "info", "warn", "error").
func SlogLevel(key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	return apply(Map(get(key), func(s string) (slog.Level, error) {
		var lvl slog.Level

		err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s))))

		return lvl, err
	}), opts)
}

// Dir reads the variable as a path that must be an existing directory.
func Dir(key string, opts ...Option[string]) Reader[string] {
	return apply(Map(get(key), func(s string) (string, error) {
		info, err := os.Stat(s)
		if err != nil {
			return s, err
		}

		if !info.IsDir() {
			return s, fmt.Errorf("%w: %s", ErrNotDirectory, s)
		}

		return s, nil
	}), opts)
}
