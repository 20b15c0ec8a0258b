package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type dumpConfig struct {
	// Packet treats the input as a size-prefixed packet-frame.
	Packet bool

	// Hex treats the input as hex text; whitespace is ignored.
	Hex bool

	// MaxDepth bounds how many levels of nested frames are expanded.
	MaxDepth int

	// MaxInputBytes rejects inputs larger than this.
	MaxInputBytes int64

	// PreviewBytes is how many value bytes are shown per field.
	PreviewBytes int
}

func defaultDumpConfig() dumpConfig {
	return dumpConfig{
		MaxDepth:      8,
		MaxInputBytes: 8 * 1024 * 1024,
		PreviewBytes:  16,
	}
}

type fileConfig struct {
	Packet        bool  `toml:"packet"`
	Hex           bool  `toml:"hex"`
	MaxDepth      int   `toml:"max_depth"`
	MaxInputBytes int64 `toml:"max_input_bytes"`
	PreviewBytes  int   `toml:"preview_bytes"`
}

func loadDumpConfig(path string) (dumpConfig, error) {
	cfg := defaultDumpConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return dumpConfig{}, fmt.Errorf("load tlvdump config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return dumpConfig{}, fmt.Errorf("load tlvdump config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("packet") {
		cfg.Packet = raw.Packet
	}
	if meta.IsDefined("hex") {
		cfg.Hex = raw.Hex
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("max_input_bytes") {
		cfg.MaxInputBytes = raw.MaxInputBytes
	}
	if meta.IsDefined("preview_bytes") {
		cfg.PreviewBytes = raw.PreviewBytes
	}

	if err := validateDumpConfig(cfg); err != nil {
		return dumpConfig{}, fmt.Errorf("load tlvdump config: %w", err)
	}
	return cfg, nil
}

func validateDumpConfig(cfg dumpConfig) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0")
	}
	if cfg.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be > 0")
	}
	if cfg.PreviewBytes < 0 {
		return fmt.Errorf("preview_bytes must be >= 0")
	}
	return nil
}
