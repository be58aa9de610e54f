// Package notify implements the single-slot toast notifier used to report
// snapshot and state operation outcomes to the widget.
package notify

import (
	"sync"
	"time"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// DefaultDuration is how long a toast stays visible before auto-clearing.
const DefaultDuration = 3000 * time.Millisecond

// Notifier holds at most one current toast. Showing a new toast while one is
// visible replaces it and restarts the clearance timer; the replaced timer
// is stopped so it never fires against stale state.
type Notifier struct {
	mu       sync.Mutex
	current  *models.Toast
	timer    *time.Timer
	duration time.Duration
	onChange func(*models.Toast) // called with the new toast, or nil on clear
	closed   bool
}

// New creates a notifier with the default clearance duration.
func New() *Notifier {
	return NewWithDuration(DefaultDuration)
}

// NewWithDuration creates a notifier with a custom clearance duration.
// Tests use short durations.
func NewWithDuration(d time.Duration) *Notifier {
	return &Notifier{duration: d}
}

// OnChange registers a callback invoked whenever the current toast changes.
// Must be called before the notifier is shared between goroutines.
func (n *Notifier) OnChange(fn func(*models.Toast)) {
	n.onChange = fn
}

// Show sets the current toast and schedules its clearance.
func (n *Notifier) Show(message string, typ models.ToastType) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	if n.timer != nil {
		n.timer.Stop()
	}
	toast := &models.Toast{Message: message, Type: typ}
	n.current = toast
	n.timer = time.AfterFunc(n.duration, func() { n.clear(toast) })
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(toast)
	}
}

// Success shows a success toast.
func (n *Notifier) Success(message string) { n.Show(message, models.ToastSuccess) }

// Error shows an error toast.
func (n *Notifier) Error(message string) { n.Show(message, models.ToastError) }

// Info shows an info toast.
func (n *Notifier) Info(message string) { n.Show(message, models.ToastInfo) }

// Warning shows a warning toast.
func (n *Notifier) Warning(message string) { n.Show(message, models.ToastWarning) }

// Current returns the toast currently showing, or nil.
func (n *Notifier) Current() *models.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// clear removes the toast, but only if it is still the one the timer was
// scheduled for. A toast shown after the timer fired must not be cleared.
func (n *Notifier) clear(toast *models.Toast) {
	n.mu.Lock()
	if n.current != toast {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(nil)
	}
}

// Close stops any pending clearance timer. Further Show calls are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}
