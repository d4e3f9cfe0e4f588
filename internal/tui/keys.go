package tui

// ViewState is the browse screen's current mode.
type ViewState int

const (
	// ViewStateList shows the table.
	ViewStateList ViewState = iota
	// ViewStateFilter routes keys to the global search input.
	ViewStateFilter
	// ViewStateQuitting indicates the program is exiting.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyNext  = "n"
	keyPrev  = "p"
	keyRight = "right"
	keyLeft  = "left"
	keyFirst = "home"
	keyLast  = "end"
	keyV     = "v"
	keyS     = "s"
)

// Layout defaults.
const (
	defaultWidth         = 100
	defaultHeight        = 24
	minBodyHeight        = 3
	chromeHeight         = 6
	filterInputCharLimit = 256
	filterInputWidth     = 40
	maxCellWidth         = 40
	truncateSuffix       = "..."
	columnGap            = "  "
)
