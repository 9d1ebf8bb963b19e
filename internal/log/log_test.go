package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	defer Logger.SetLevel(logrus.InfoLevel)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("set debug: %v", err)
	}
	if Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %s", Logger.GetLevel())
	}

	if err := SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if Logger.GetLevel() != logrus.DebugLevel {
		t.Error("unknown level should leave the level unchanged")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	out := Logger.Out
	Logger.SetOutput(&buf)
	defer Logger.SetOutput(out)

	WithFields(logrus.Fields{"request_id": "r1"}).Info("handled")

	if got := buf.String(); !strings.Contains(got, "request_id=r1") || !strings.Contains(got, "handled") {
		t.Errorf("output = %q", got)
	}
}
