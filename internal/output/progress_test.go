package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSpinner_NonTTYPrintsOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Mining baskets.csv")
	s.SetWriter(buf)

	s.Start()
	s.Stop()

	output := buf.String()
	if output != "Mining baskets.csv...\n" {
		t.Errorf("non-TTY spinner output = %q, want single message line", output)
	}
}

func TestSpinner_StartStop(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)

	s.Start()
	if !s.running {
		t.Error("Spinner should be running after Start()")
	}

	s.Stop()
	if s.running {
		t.Error("Spinner should not be running after Stop()")
	}
}

func TestSpinner_DoubleStart(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)

	s.Start()
	s.Start()
	s.Stop()

	// Non-TTY: second Start must not reprint the message.
	if got := strings.Count(buf.String(), "Test..."); got != 1 {
		t.Errorf("message printed %d times, want 1", got)
	}
}

func TestSpinner_MultipleStops(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)

	s.Start()

	// Multiple stops should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinner_StopWithMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Working")
	s.SetWriter(buf)

	s.Start()
	s.StopWithMessage("Done!")

	output := buf.String()
	if !strings.Contains(output, "Done!") {
		t.Errorf("Spinner should contain final message, got: %q", output)
	}
}

func TestSpinner_WithTimeoutFormat(t *testing.T) {
	s := NewSpinner("Mining").WithTimeout(30 * time.Second)
	s.startTime = time.Now()

	s.mu.Lock()
	msg := s.formatMessage()
	s.mu.Unlock()

	if !strings.Contains(msg, "remaining") {
		t.Errorf("formatMessage() = %q, want remaining-time format", msg)
	}

	s.timeout = 0
	s.mu.Lock()
	msg = s.formatMessage()
	s.mu.Unlock()

	if !strings.Contains(msg, "elapsed") {
		t.Errorf("formatMessage() = %q, want elapsed-time format", msg)
	}
}

func TestPassReporter_NonTTY(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Mining")
	s.SetWriter(buf)
	s.Start()

	r := NewPassReporter(s)
	r.Report(1, 12, 7)
	r.Report(2, 21, 9)
	s.Stop()

	if r.Passes() != 2 {
		t.Errorf("Passes() = %d, want 2", r.Passes())
	}

	output := buf.String()
	if !strings.Contains(output, "Pass 1: 12 candidates, 7 frequent") {
		t.Errorf("missing pass 1 line in output: %q", output)
	}
	if !strings.Contains(output, "Pass 2: 21 candidates, 9 frequent") {
		t.Errorf("missing pass 2 line in output: %q", output)
	}
}

// TestSpinner_Concurrent tests spinner thread safety
func TestSpinner_Concurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Concurrent spinner")
	s.SetWriter(buf)
	s.Start()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.UpdateMessage("Message from goroutine")
			}
		}()
	}
	wg.Wait()

	s.Stop()
}

// TestPassReporter_Concurrent exercises the reporter from multiple
// goroutines the way parallel counting workers would.
func TestPassReporter_Concurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Mining")
	s.SetWriter(buf)
	s.Start()

	r := NewPassReporter(s)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				r.Report(n, j, j)
			}
		}(i)
	}
	wg.Wait()
	s.Stop()

	if r.Passes() != 100 {
		t.Errorf("Passes() = %d, want 100", r.Passes())
	}
}
