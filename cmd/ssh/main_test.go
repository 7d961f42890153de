package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestHandler(games context.Context) *handler {
	return &handler{logger: log.New(io.Discard), games: games}
}

func TestHandlerRefusesJoinAfterWait(t *testing.T) {
	h := newTestHandler(context.Background())

	if !h.join() {
		t.Fatal("join should succeed before shutdown")
	}
	h.wait(10 * time.Millisecond)
	if h.join() {
		t.Error("join should fail once wait has started")
	}
	if h.active() != 1 {
		t.Errorf("active = %d, want 1", h.active())
	}

	h.leave()
	if h.active() != 0 {
		t.Errorf("active = %d, want 0", h.active())
	}
}

func TestHandlerRefusesJoinWhenGamesStopped(t *testing.T) {
	games, stop := context.WithCancel(context.Background())
	stop()
	h := newTestHandler(games)

	if h.join() {
		t.Error("join should fail after games are stopped")
	}
}

func TestHandlerWaitReturnsWhenPlayersLeave(t *testing.T) {
	h := newTestHandler(context.Background())
	if !h.join() {
		t.Fatal("join failed")
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		h.leave()
	}()

	start := time.Now()
	h.wait(5 * time.Second)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("wait took %v, want it to return once the player left", elapsed)
	}
}
