package snapshot

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_BurstCollapsesToOneFire(t *testing.T) {
	var fires atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { fires.Add(1) })
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	if got := fires.Load(); got != 1 {
		t.Errorf("fires = %d, want 1", got)
	}
}

func TestDebouncer_CancelDropsPendingFire(t *testing.T) {
	var fires atomic.Int32
	d := newDebouncer(10*time.Millisecond, func() { fires.Add(1) })
	defer d.Stop()

	d.Trigger()
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	if got := fires.Load(); got != 0 {
		t.Errorf("fires = %d, want 0", got)
	}
}

func TestDebouncer_StopIgnoresLaterTriggers(t *testing.T) {
	var fires atomic.Int32
	d := newDebouncer(5*time.Millisecond, func() { fires.Add(1) })

	d.Stop()
	d.Trigger()

	time.Sleep(30 * time.Millisecond)
	if got := fires.Load(); got != 0 {
		t.Errorf("fires = %d, want 0", got)
	}
}

// Auto-save end to end: diagram edits restart the debounce window, the fire
// writes an auto-save record, and unchanged state skips the redundant write.
func TestManager_AutoSaveDebounce(t *testing.T) {
	env := newTestEnv(t, Options{AutoSaveDelay: 25 * time.Millisecond})
	env.manager.ToggleAutoSave(true)

	env.diagram.SelectEntities([]string{"account"})
	env.diagram.SelectEntities([]string{"contact"})

	if env.manager.LastAutoSave() != nil {
		t.Fatal("auto-save fired before the debounce window elapsed")
	}

	deadline := time.Now().Add(2 * time.Second)
	for env.manager.LastAutoSave() == nil {
		if time.Now().After(deadline) {
			t.Fatal("auto-save never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	saved := env.manager.LastAutoSave()
	if saved.ID != "auto-save" || len(saved.State.SelectedEntities) != 2 {
		t.Errorf("auto-save record = %+v", saved)
	}

	// A flush with unchanged state must not move the timestamp.
	before := saved.Timestamp
	env.manager.Flush()
	if after := env.manager.LastAutoSave().Timestamp; after != before {
		t.Errorf("unchanged flush rewrote the record: %d -> %d", before, after)
	}
}

func TestManager_AutoSaveDisabledNeverFires(t *testing.T) {
	env := newTestEnv(t, Options{AutoSaveDelay: 10 * time.Millisecond})

	env.diagram.SelectEntities([]string{"account"})
	time.Sleep(50 * time.Millisecond)

	if env.manager.LastAutoSave() != nil {
		t.Error("auto-save fired while disabled")
	}
	env.manager.Flush()
	if env.manager.LastAutoSave() != nil {
		t.Error("flush wrote an auto-save while disabled")
	}
}
