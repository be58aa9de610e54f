package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

func TestNotifier_ShowAndAutoClear(t *testing.T) {
	n := NewWithDuration(20 * time.Millisecond)
	defer n.Close()

	n.Success("saved")
	toast := n.Current()
	if toast == nil || toast.Message != "saved" || toast.Type != models.ToastSuccess {
		t.Fatalf("current = %+v", toast)
	}

	deadline := time.Now().Add(time.Second)
	for n.Current() != nil {
		if time.Now().After(deadline) {
			t.Fatal("toast never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifier_ReplacementRestartsTimer(t *testing.T) {
	n := NewWithDuration(40 * time.Millisecond)
	defer n.Close()

	n.Info("first")
	time.Sleep(25 * time.Millisecond)
	n.Error("second")

	// At this point the first toast's window has elapsed. Its stopped
	// timer must not clear the replacement.
	time.Sleep(25 * time.Millisecond)
	toast := n.Current()
	if toast == nil || toast.Message != "second" {
		t.Fatalf("replacement cleared early: %+v", toast)
	}

	deadline := time.Now().Add(time.Second)
	for n.Current() != nil {
		if time.Now().After(deadline) {
			t.Fatal("replacement never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifier_OnChangeSeesShowAndClear(t *testing.T) {
	n := NewWithDuration(15 * time.Millisecond)
	defer n.Close()

	var mu sync.Mutex
	var events []*models.Toast
	n.OnChange(func(toast *models.Toast) {
		mu.Lock()
		events = append(events, toast)
		mu.Unlock()
	})

	n.Warning("careful")

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		done := len(events) >= 2
		mu.Unlock()
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("clear event never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if events[0] == nil || events[0].Message != "careful" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1] != nil {
		t.Errorf("second event = %+v, want nil clear", events[1])
	}
}

func TestNotifier_CloseIgnoresLaterShows(t *testing.T) {
	n := NewWithDuration(time.Minute)
	n.Show("pending", models.ToastInfo)
	n.Close()

	if n.Current() != nil {
		t.Error("close should drop the current toast")
	}
	n.Show("after close", models.ToastInfo)
	if n.Current() != nil {
		t.Error("show after close should be ignored")
	}
}
