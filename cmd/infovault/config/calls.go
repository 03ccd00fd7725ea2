package config

import (
	"strings"
)

// Sub returns subsection of the Config by name.
//
// Returns nil if subsection if missing.
func (x *Config) Sub(name string) *Config {
	return &Config{
		v:    x.v,
		path: extend(x.path, name),
	}
}

// Value returns configuration value by name.
//
// Result can be casted to a particular type
// via corresponding function (e.g. StringSlice).
// Note: casting via Go `.()` operator is not
// recommended.
//
// Returns nil if config is nil.
func (x *Config) Value(name string) any {
	return x.v.Get(strings.Join(extend(x.path, name), separator))
}

func extend(path []string, names ...string) []string {
	res := make([]string, len(path), len(path)+len(names))
	copy(res, path)
	return append(res, names...)
}
