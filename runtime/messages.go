package runtime

import "time"

// Message represents an event flowing into the app loop. Messages come
// from driver input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// Key identifies a non-rune key press.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the display size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// TickMsg is sent on each frame tick when a tick rate is configured.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// StateFlushMsg wakes the loop to drain pending state change batches.
type StateFlushMsg struct{}

func (StateFlushMsg) isMessage() {}

// InvalidateMsg requests a render pass without a state change.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// QuitMsg asks the app loop to exit.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}
