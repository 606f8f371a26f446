// Package config holds the front end's run-time settings: defaults baked
// in, overridden by flags, overridden again by a handful of environment
// variables. Styled after the teacher's internal/app/config.go, trimmed
// down to what a ROM-in, window-out front end actually needs — no audio,
// save states, or rewind buffer, since those are out of this core's scope
// (spec.md §1 Non-goals).
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config is the front end's resolved settings for one run.
type Config struct {
	ROMPath        string // path to the .nes file to load; may be empty
	Scale          int    // integer window scale factor applied to the 256x240 frame
	Debug          bool   // enables internal/diag's stderr logging
	VersionRequest bool   // -version: print build info and exit, handled by the caller
}

// defaults mirrors the teacher's NewConfig: a window scale of 2x hits the
// same 512x480 the teacher's default WindowConfig landed on for an NES
// frame, without carrying the rest of its window/audio/input struct.
func defaults() Config {
	return Config{
		ROMPath: "",
		Scale:   2,
		Debug:   false,
	}
}

// Parse resolves a Config from defaults, then flags, then environment
// variables, in that order — each layer overrides the one before it, the
// same precedence order the teacher's main.go applies (flags override a
// loaded config file; here env vars have the final say since there is no
// config file).
func Parse(args []string) (*Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet("nesgo", flag.ContinueOnError)
	rom := fs.String("rom", cfg.ROMPath, "path to a .nes ROM file")
	scale := fs.Int("scale", cfg.Scale, "integer window scale factor")
	debug := fs.Bool("debug", cfg.Debug, "enable debug logging")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.ROMPath = *rom
	cfg.Scale = *scale
	cfg.Debug = *debug
	cfg.VersionRequest = *version

	if v := os.Getenv("NESGO_ROM"); v != "" {
		cfg.ROMPath = v
	}
	if v := os.Getenv("NESGO_SCALE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: NESGO_SCALE=%q: %w", v, err)
		}
		cfg.Scale = n
	}

	if cfg.Scale < 1 {
		return nil, fmt.Errorf("config: scale must be >= 1, got %d", cfg.Scale)
	}

	return &cfg, nil
}
