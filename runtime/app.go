package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lorikeet-ui/lorikeet/state"
)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// AppConfig configures an App.
type AppConfig struct {
	Driver        Driver
	View          View
	Update        UpdateFunc
	MessageBuffer int
	TickRate      time.Duration
	Queue         *state.ChangeQueue
	Logger        *slog.Logger
}

// App runs a view against a driver, draining state change batches
// between messages so every render observes a settled state tree.
type App struct {
	id          string
	driver      Driver
	view        View
	update      UpdateFunc
	log         *slog.Logger
	messages    chan Message
	tickRate    time.Duration
	queue       *state.ChangeQueue
	pump        *StatePump
	invalidator *Invalidator

	running bool
	dirty   bool
}

// NewApp creates an App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.Queue
	if queue == nil {
		queue = state.NewChangeQueue()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := ulid.Make().String()
	app := &App{
		id:       id,
		driver:   cfg.Driver,
		view:     cfg.View,
		update:   cfg.Update,
		log:      logger.With("app", id),
		messages: make(chan Message, bufferSize),
		tickRate: cfg.TickRate,
		queue:    queue,
	}
	app.pump = NewStatePump(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// ID returns the app's instance id.
func (a *App) ID() string { return a.id }

// Queue returns the app's state change queue.
func (a *App) Queue() *state.ChangeQueue {
	if a == nil {
		return nil
	}
	return a.queue
}

// Scheduler returns the scheduler writers should be created with so
// their batches wake this app's loop.
func (a *App) Scheduler() state.ChangeScheduler {
	if a == nil {
		return nil
	}
	return a.pump
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Quit asks the loop to exit after the current message.
func (a *App) Quit() {
	a.Post(QuitMsg{})
}

// Post sends a message to the event loop, dropping it if the buffer is
// full.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the event loop without blocking and
// reports whether it was accepted.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.driver == nil {
		return errors.New("driver is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.driver.Init(); err != nil {
		return fmt.Errorf("init driver: %w", err)
	}
	defer a.driver.Fini()

	w, h := a.driver.Size()
	a.log.Info("app started", "width", w, "height", h)

	if m, ok := a.view.(Lifecycle); ok {
		m.Mount(a)
		defer m.Unmount()
	}

	a.running = true
	a.dirty = true

	go a.pollEvents()

	var ticker *time.Ticker
	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker = time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running {
		var msg Message
		select {
		case <-ctx.Done():
			a.running = false
		case msg = <-a.messages:
			if a.handleMessage(msg) {
				a.dirty = true
			}
		case now := <-ticks:
			msg = TickMsg{Time: now}
			if a.handleMessage(msg) {
				a.dirty = true
			}
		}

		if !a.running {
			continue
		}

		if a.pump.Flush() > 0 {
			a.dirty = true
		}
		if _, ok := msg.(InvalidateMsg); ok {
			a.invalidator.resetPending()
		}

		if a.dirty {
			a.render()
			a.dirty = false
		}
	}

	a.log.Info("app stopped")
	return ctx.Err()
}

func (a *App) handleMessage(msg Message) bool {
	switch m := msg.(type) {
	case QuitMsg:
		a.running = false
		return false
	case StateFlushMsg:
		// The post-message flush drains the queue; nothing else to do.
		return false
	case InvalidateMsg:
		return true
	case ResizeMsg:
		a.log.Debug("resize", "width", m.Width, "height", m.Height)
		if a.update != nil {
			a.update(a, msg)
		}
		return true
	default:
		if a.update != nil {
			return a.update(a, msg)
		}
		return false
	}
}

func (a *App) render() {
	if a.view == nil {
		return
	}
	w, h := a.driver.Size()
	a.driver.Clear()
	a.view.Render(a.driver, w, h)
	a.driver.Show()
}

func (a *App) pollEvents() {
	for a.running {
		msg := a.driver.Poll()
		if msg == nil {
			return
		}
		a.Post(msg)
	}
}
