package runtime

// Driver abstracts the display and input device an app runs against.
// Poll blocks for the next input event, translated into a Message; it
// returns nil once the driver is finalized.
type Driver interface {
	Init() error
	Fini()
	Size() (width, height int)
	Poll() Message
	Clear()
	Print(x, y int, text string)
	Show()
}

// View renders under the app loop. Render is called after state
// batches drain, so reads observe a settled tree.
type View interface {
	Render(d Driver, width, height int)
}

// Lifecycle is implemented by views that need mount and unmount hooks,
// typically to subscribe and unsubscribe their watchers.
type Lifecycle interface {
	Mount(app *App)
	Unmount()
}
