package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerRendersMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Fetching info for flask...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Fetching info for flask...") {
		t.Errorf("spinner output = %q", out.String())
	}
	if !strings.HasSuffix(out.String(), "\r") {
		t.Error("Stop should clear the line")
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	s := newSpinner(ctx, &out, "waiting")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "x")
	s.Start()
	s.Stop()
	s.Stop()
}
