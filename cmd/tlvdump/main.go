// tlvdump prints the fields of a TLV frame or packet-frame as a tree.
//
//	tlvdump [flags] [file]
//
// Input is read from file, or stdin when file is omitted or "-".
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/yatlv/internal/logging"
	"github.com/danmuck/yatlv/tlv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	logging.ConfigureRuntime()
	tlv.SetLogger(log.Logger)
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("tlvdump failed")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flagSet := pflag.NewFlagSet("tlvdump", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	configPath := flagSet.StringP("config", "c", "", "TOML config file")
	packet := flagSet.BoolP("packet", "p", false, "input is a size-prefixed packet-frame")
	hexInput := flagSet.BoolP("hex", "x", false, "input is hex text")
	maxDepth := flagSet.Int("max-depth", 0, "nested frame levels to expand")
	maxInput := flagSet.Int64("max-input-bytes", 0, "reject inputs larger than this")
	preview := flagSet.Int("preview-bytes", 0, "value bytes shown per field")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := defaultDumpConfig()
	if *configPath != "" {
		loaded, err := loadDumpConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		log.Debug().Str("path", *configPath).Msg("loaded tlvdump config")
	}
	if flagSet.Changed("packet") {
		cfg.Packet = *packet
	}
	if flagSet.Changed("hex") {
		cfg.Hex = *hexInput
	}
	if flagSet.Changed("max-depth") {
		cfg.MaxDepth = *maxDepth
	}
	if flagSet.Changed("max-input-bytes") {
		cfg.MaxInputBytes = *maxInput
	}
	if flagSet.Changed("preview-bytes") {
		cfg.PreviewBytes = *preview
	}
	if err := validateDumpConfig(cfg); err != nil {
		return err
	}

	in := stdin
	if name := flagSet.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := readInput(in, cfg)
	if err != nil {
		return err
	}
	p, err := parseInput(data, cfg)
	if err != nil {
		return fmt.Errorf("parse input (%d bytes): %w", len(data), err)
	}
	log.Debug().Int("bytes", len(data)).Int("fields", p.Len()).Msg("parsed input")
	return dumpFrame(stdout, p, cfg)
}
