package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

var (
	_ normalize.Logger = (*Logger)(nil)
	_ normalize.Logger = Nop{}
)

func TestNewWithWriter(t *testing.T) {
	for _, jsonFormat := range []bool{false, true} {
		var buf bytes.Buffer
		logger, err := NewWithWriter(&buf, jsonFormat)
		if err != nil {
			t.Fatalf("NewWithWriter(json=%v) error = %v", jsonFormat, err)
		}
		logger.Warn("field fallback", "key", "2021Sci...372..187E", "field", "pages")
		if err := logger.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		if !strings.Contains(buf.String(), "field fallback") {
			t.Errorf("json=%v output %q does not contain the message", jsonFormat, buf.String())
		}
	}
}

func TestNop(t *testing.T) {
	var n Nop
	n.Info("ignored", "k", "v")
	if err := n.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
