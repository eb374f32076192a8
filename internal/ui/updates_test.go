package ui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"go.uber.org/zap"
)

func TestUpdateSenderNonBlocking(t *testing.T) {
	msgChan := make(chan tea.Msg, 10)
	sender := NewUpdateSender(msgChan, zap.NewNop())
	defer sender.Close()

	for i := 0; i < 10; i++ {
		sender.Publish(feed.State{Status: feed.StatusLoading})
	}

	// These should be dropped without blocking
	start := time.Now()
	for i := 0; i < 100; i++ {
		sender.Publish(feed.State{Status: feed.StatusSuccess})
	}
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Errorf("Publish blocked for %v, expected non-blocking", elapsed)
	}

	sent, dropped := sender.GetStats()
	if sent != 10 || dropped != 100 {
		t.Errorf("Expected 10 sent and 100 dropped, got %d and %d", sent, dropped)
	}
}

func TestUpdateSenderWrapsState(t *testing.T) {
	msgChan := make(chan tea.Msg, 1)
	sender := NewUpdateSender(msgChan, zap.NewNop())
	defer sender.Close()

	sender.Publish(feed.State{Status: feed.StatusError, Err: feed.LoadErrorMessage, PassID: "p1"})

	msg, ok := (<-msgChan).(TransfersMsg)
	if !ok {
		t.Fatal("Expected TransfersMsg")
	}
	if msg.State.PassID != "p1" || msg.State.Err != feed.LoadErrorMessage {
		t.Errorf("unexpected state: %+v", msg.State)
	}
}

func TestUpdateSenderConcurrent(t *testing.T) {
	msgChan := make(chan tea.Msg, 100)
	sender := NewUpdateSender(msgChan, zap.NewNop())
	defer sender.Close()

	var wg sync.WaitGroup
	numGoroutines := 10
	messagesPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				sender.Publish(feed.State{})
			}
		}()
	}
	wg.Wait()

	sent, dropped := sender.GetStats()
	total := sent + dropped
	expected := uint64(numGoroutines * messagesPerGoroutine)

	if total != expected {
		t.Errorf("Expected %d total messages, got %d (sent: %d, dropped: %d)",
			expected, total, sent, dropped)
	}
}

func TestUpdateSenderCloseTwice(t *testing.T) {
	sender := NewUpdateSender(make(chan tea.Msg, 1), zap.NewNop())
	sender.Close()
	sender.Close()
}

func TestListenStopsOnClosedChannel(t *testing.T) {
	ch := make(chan tea.Msg, 1)
	ch <- TransfersMsg{State: feed.State{PassID: "x"}}
	close(ch)

	cmd := Listen(ch)
	if msg, ok := cmd().(TransfersMsg); !ok || msg.State.PassID != "x" {
		t.Fatalf("Expected buffered TransfersMsg, got %#v", msg)
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("Expected nil after close, got %#v", msg)
	}
}
