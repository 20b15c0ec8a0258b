package tlv

import "github.com/rs/zerolog"

// logger receives trace diagnostics for rejected input. Silent by default.
var logger = zerolog.Nop()

// SetLogger routes the package's diagnostics to l.
func SetLogger(l zerolog.Logger) {
	logger = l
}
