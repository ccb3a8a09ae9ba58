package dispatcher

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	called := false
	d.Register(":LAYER:TOGGLE:", func(e Event) (any, error) {
		called = true
		return "result", nil
	})

	result, err := d.Dispatch(Event{Command: ":LAYER:TOGGLE:", Args: []string{"6"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler was not called")
	}
	if result != "result" {
		t.Errorf("expected result, got %v", result)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: ":NOPE:"})

	if err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":PIN:ADD:", func(e Event) (any, error) { return nil, nil })

	if !d.HasHandler(":PIN:ADD:") {
		t.Error("expected handler to be registered")
	}
	if d.HasHandler(":PIN:REMOVE:") {
		t.Error("unexpected handler")
	}
}

func TestDispatcher_BufferedHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var processed atomic.Int64
	done := make(chan struct{}, 10)
	d.Register(":REGION:SET:", func(e Event) (any, error) {
		processed.Add(1)
		done <- struct{}{}
		return nil, nil
	}, Buffered(10))

	for i := 0; i < 5; i++ {
		result, err := d.Dispatch(Event{Command: ":REGION:SET:"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "queued" {
			t.Errorf("expected queued, got %v", result)
		}
	}

	for i := 0; i < 5; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for buffered handler")
		}
	}

	if processed.Load() != 5 {
		t.Errorf("expected 5 processed, got %d", processed.Load())
	}
}

func TestDispatcher_BufferedQueueFull(t *testing.T) {
	d, _ := newTestDispatcher(t)

	block := make(chan struct{})
	d.Register(":SLOW:", func(e Event) (any, error) {
		<-block
		return nil, nil
	}, Buffered(1))

	// First event occupies the worker, second fills the buffer; the
	// third must be dropped.
	d.Dispatch(Event{Command: ":SLOW:"})
	d.Dispatch(Event{Command: ":SLOW:"})

	var dropErr error
	for i := 0; i < 10; i++ {
		if _, dropErr = d.Dispatch(Event{Command: ":SLOW:"}); dropErr != nil {
			break
		}
	}
	close(block)

	if dropErr == nil {
		t.Error("expected queue-full error")
	}
}

func TestDispatcher_LoggedHandlerReportsErrors(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":FAIL:", func(e Event) (any, error) {
		return nil, fmt.Errorf("boom")
	}, Logged())

	_, err := d.Dispatch(Event{Command: ":FAIL:"})
	if err == nil {
		t.Fatal("expected error")
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	found := false
	for _, m := range logger.messages {
		if len(m) >= 5 && m[:5] == "ERROR" {
			found = true
		}
	}
	if !found {
		t.Error("expected an error log entry")
	}
}
