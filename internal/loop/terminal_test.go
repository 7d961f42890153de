package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/kittens/internal/config"
)

func TestTerminalRunsUntilInputCloses(t *testing.T) {
	var out bytes.Buffer
	size := func() (int, int, error) { return 80, 24, nil }
	term := NewTerminal(bufio.NewReader(strings.NewReader("")), &out, size, config.DefaultSession())

	opts := testOptions()
	opts.FrameTime = time.Millisecond
	if err := Run(context.Background(), term, opts); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "KITTENS vs LION LICKERS") {
		t.Error("title not written to the terminal")
	}
}

func TestTerminalPlaysASession(t *testing.T) {
	var out bytes.Buffer
	size := func() (int, int, error) { return 80, 24, nil }
	r, w := io.Pipe()
	defer w.Close()
	go func() { _, _ = w.Write([]byte("\r")) }()

	term := NewTerminal(bufio.NewReader(r), &out, size, config.DefaultSession())
	s := NewState(term, testOptions())

	deadline := time.Now().Add(2 * time.Second)
	now := t0
	for s.Phase == PhaseTitle && time.Now().Before(deadline) {
		if _, err := s.Tick(now); err != nil {
			t.Fatal(err)
		}
		now = now.Add(16 * time.Millisecond)
		time.Sleep(time.Millisecond)
	}

	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing after enter", s.Phase)
	}
	if !strings.Contains(out.String(), "SCORE: 1") {
		t.Error("first frame HUD not written")
	}
}
