/*
© 2025–present remote-shell-go contributors
ISC License
*/

// Package config holds the server's tunable parameters, spec.md §2/§6:
// listening port, accept backlog, the two scheduling quanta and the
// pipe buffer size. Defaults match the specification; an operator may
// override them with a YAML file named by REMOTESHELL_CONFIG.
package config

import (
	"os"
	"time"

	"github.com/akoQassym/remote-shell-go/internal/perrors"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable carrying an optional path to a
// YAML override file. There are no command-line flags.
const EnvVar = "REMOTESHELL_CONFIG"

// Config is the server's tunable parameters.
type Config struct {
	// Port is the TCP port the server listens on.
	Port int
	// Backlog is the accept() backlog depth.
	Backlog int
	// ShortQuantum is the time slice granted to a task's first burst,
	// spec.md §4.3/§4.4.
	ShortQuantum time.Duration
	// LongQuantum is the time slice granted to a task once it has used
	// its short quantum and continues running, spec.md §4.3/§4.4.
	LongQuantum time.Duration
	// BufferSize is the size, in bytes, of the buffer used to read a
	// client's request line and to relay captured output back to it.
	BufferSize int
}

// Default returns the specification's literal default values.
func Default() Config {
	return Config{
		Port:         8080,
		Backlog:      5,
		ShortQuantum: 3 * time.Second,
		LongQuantum:  7 * time.Second,
		BufferSize:   1024,
	}
}

// fileOverrides is the YAML document shape. Quanta are given in
// fractional seconds because yaml.v3 has no built-in codec for
// [time.Duration]; keys absent from the document leave their field at
// the value it was seeded with before unmarshaling, while a key given
// explicitly (even as 0) overrides it.
type fileOverrides struct {
	Port             int     `yaml:"port"`
	Backlog          int     `yaml:"backlog"`
	ShortQuantumSecs float64 `yaml:"short_quantum_seconds"`
	LongQuantumSecs  float64 `yaml:"long_quantum_seconds"`
	BufferSize       int     `yaml:"buffer_size"`
}

// Load returns Default, overridden field-by-field by the YAML document
// at the path named by the REMOTESHELL_CONFIG environment variable, if
// set. A missing or empty environment variable is not an error.
func Load() (cfg Config, err error) {
	cfg = Default()

	var path = os.Getenv(EnvVar)
	if path == "" {
		return
	}

	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		err = perrors.ErrorfPF("config.Load", "read %q: %w", path, err)
		return
	}

	var overrides = fileOverrides{
		Port:             cfg.Port,
		Backlog:          cfg.Backlog,
		ShortQuantumSecs: cfg.ShortQuantum.Seconds(),
		LongQuantumSecs:  cfg.LongQuantum.Seconds(),
		BufferSize:       cfg.BufferSize,
	}
	if err = yaml.Unmarshal(data, &overrides); err != nil {
		err = perrors.ErrorfPF("config.Load", "parse %q: %w", path, err)
		return
	}

	cfg.Port = overrides.Port
	cfg.Backlog = overrides.Backlog
	cfg.ShortQuantum = time.Duration(overrides.ShortQuantumSecs * float64(time.Second))
	cfg.LongQuantum = time.Duration(overrides.LongQuantumSecs * float64(time.Second))
	cfg.BufferSize = overrides.BufferSize
	return
}
