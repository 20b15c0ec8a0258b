package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/danmuck/yatlv/tlv"
)

var errInputTooLarge = errors.New("tlvdump: input too large")

func readInput(r io.Reader, cfg dumpConfig) ([]byte, error) {
	// One byte past the limit distinguishes "exactly max" from "too large".
	limit := cfg.MaxInputBytes
	if limit < math.MaxInt64 {
		limit++
	}
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > cfg.MaxInputBytes {
		return nil, errInputTooLarge
	}
	if !cfg.Hex {
		return data, nil
	}
	text := strings.Join(strings.Fields(string(data)), "")
	out, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return out, nil
}

func parseInput(data []byte, cfg dumpConfig) (*tlv.Parser, error) {
	if cfg.Packet {
		return tlv.ParsePacket(data)
	}
	return tlv.Parse(data)
}

// dumpFrame renders p as an indented tree. Field values that parse as
// packet-frames are expanded until cfg.MaxDepth.
func dumpFrame(w io.Writer, p *tlv.Parser, cfg dumpConfig) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "frame fields=%d\n", p.Len())
	writeFields(&sb, p, cfg, 1)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeFields(sb *strings.Builder, p *tlv.Parser, cfg dumpConfig, depth int) {
	indent := strings.Repeat("  ", depth)
	for tag, value := range p.Fields() {
		fmt.Fprintf(sb, "%stag=%d len=%d", indent, tag, len(value))
		if depth <= cfg.MaxDepth {
			if child, err := tlv.ParsePacket(value); err == nil {
				fmt.Fprintf(sb, " child fields=%d\n", child.Len())
				writeFields(sb, child, cfg, depth+1)
				continue
			}
		}
		sb.WriteString(describeValue(value, cfg.PreviewBytes))
		sb.WriteByte('\n')
	}
}

func describeValue(value []byte, preview int) string {
	var parts []string
	if n, err := tlv.DecodeU64(value); err == nil {
		parts = append(parts, fmt.Sprintf("uint=%d", n))
	}
	if s, err := tlv.DecodeStr(value); err == nil && len(value) > 0 && printable(s) {
		parts = append(parts, fmt.Sprintf("str=%q", s))
	}
	if preview > 0 && len(value) > 0 {
		shown := value[:min(len(value), preview)]
		h := hex.EncodeToString(shown)
		if len(shown) < len(value) {
			h += "..."
		}
		parts = append(parts, "hex="+h)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func printable(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
