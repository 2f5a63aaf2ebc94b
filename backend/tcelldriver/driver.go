// Package tcelldriver runs a lorikeet app on a tcell terminal screen.
package tcelldriver

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lorikeet-ui/lorikeet/runtime"
)

// Driver adapts a tcell screen to the runtime.Driver contract.
type Driver struct {
	screen tcell.Screen
	style  tcell.Style
}

var _ runtime.Driver = (*Driver)(nil)

// New creates a driver on a fresh tcell screen.
func New() (*Driver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Driver{screen: screen, style: tcell.StyleDefault}, nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen
// in tests.
func NewWithScreen(screen tcell.Screen) *Driver {
	return &Driver{screen: screen, style: tcell.StyleDefault}
}

// Init initializes the screen and hides the cursor.
func (d *Driver) Init() error {
	if err := d.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	d.screen.HideCursor()
	return nil
}

// Fini restores the terminal.
func (d *Driver) Fini() { d.screen.Fini() }

// Size returns the screen dimensions.
func (d *Driver) Size() (int, int) { return d.screen.Size() }

// Poll blocks for the next input event and translates it. It returns
// nil once the screen is finalized.
func (d *Driver) Poll() runtime.Message {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			if msg, ok := keyMsg(e); ok {
				return msg
			}
		case *tcell.EventResize:
			w, h := e.Size()
			return runtime.ResizeMsg{Width: w, Height: h}
		}
	}
}

func keyMsg(e *tcell.EventKey) (runtime.KeyMsg, bool) {
	msg := runtime.KeyMsg{
		Alt:   e.Modifiers()&tcell.ModAlt != 0,
		Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
		Shift: e.Modifiers()&tcell.ModShift != 0,
	}
	switch e.Key() {
	case tcell.KeyRune:
		msg.Key = runtime.KeyRune
		msg.Rune = e.Rune()
	case tcell.KeyEnter:
		msg.Key = runtime.KeyEnter
	case tcell.KeyEscape:
		msg.Key = runtime.KeyEsc
	case tcell.KeyTab:
		msg.Key = runtime.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		msg.Key = runtime.KeyBackspace
	case tcell.KeyUp:
		msg.Key = runtime.KeyUp
	case tcell.KeyDown:
		msg.Key = runtime.KeyDown
	case tcell.KeyLeft:
		msg.Key = runtime.KeyLeft
	case tcell.KeyRight:
		msg.Key = runtime.KeyRight
	case tcell.KeyCtrlC:
		msg.Key = runtime.KeyCtrlC
	default:
		return runtime.KeyMsg{}, false
	}
	return msg, true
}

// Clear erases the screen contents.
func (d *Driver) Clear() { d.screen.Clear() }

// Print writes text starting at (x, y), advancing by display width so
// wide runes occupy their full cells.
func (d *Driver) Print(x, y int, text string) {
	for _, r := range text {
		d.screen.SetContent(x, y, r, nil, d.style)
		x += runewidth.RuneWidth(r)
	}
}

// Show flushes pending screen updates to the terminal.
func (d *Driver) Show() { d.screen.Show() }
