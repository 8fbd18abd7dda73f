package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Str("pair", "EUR/USD").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["level"] != "warn" || entry["pair"] != "EUR/USD" || entry["message"] != "shown" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestSetupUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "loud", false)

	log.Debug().Msg("debug")
	log.Info().Msg("info")
	if strings.Contains(buf.String(), "debug") || !strings.Contains(buf.String(), "info") {
		t.Errorf("expected info level, got %q", buf.String())
	}
}

func TestSetupPretty(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "info", true)

	log.Info().Msg("hello")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected console output, got %q", buf.String())
	}
}
