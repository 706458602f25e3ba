package obs

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	Debug().Str("k", "v").Msg("hello")

	if buf.Len() == 0 {
		t.Fatal("expected Debug() to write through the logger set by SetLogger")
	}
}

func TestLoggerReturnsLastSetLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).With().Str("component", "obs-test").Logger()
	SetLogger(l)

	l2 := Logger()
	l2.Debug().Msg("via Logger()")

	if buf.Len() == 0 {
		t.Fatal("expected Logger() to return the logger set by SetLogger")
	}
}

func TestDebugSuppressedAboveDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	Debug().Msg("should be filtered out")

	if buf.Len() != 0 {
		t.Fatalf("expected no output below the configured level, got %q", buf.String())
	}
}
