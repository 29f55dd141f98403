package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-djmpl/internal/logging"
)

func TestLevel(t *testing.T) {
	if logging.Level(true) != log.DebugLevel {
		t.Fatal("verbose should log at debug level")
	}
	if logging.Level(false) != log.InfoLevel {
		t.Fatal("default should log at info level")
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, log.InfoLevel)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered, got %q", buf.String())
	}

	logger.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected info output, got %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if logging.FromContext(context.Background()) == nil {
		t.Fatal("expected the default logger")
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, log.InfoLevel)
	ctx := logging.WithLogger(context.Background(), logger)
	if logging.FromContext(ctx) != logger {
		t.Fatal("expected the attached logger")
	}
}
