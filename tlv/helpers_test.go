package tlv

import (
	"testing"

	"github.com/danmuck/yatlv/internal/testutil/testlog"
	"github.com/rs/zerolog/log"
)

func start(t *testing.T) {
	t.Helper()
	testlog.Start(t)
	SetLogger(log.Logger)
}

func mustParse(t *testing.T, data []byte) *Parser {
	t.Helper()
	p, err := Parse(data)
	if err != nil {
		t.Fatalf("parse %v: %v", data, err)
	}
	return p
}
