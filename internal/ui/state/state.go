package state

// Screen identifies a top level screen
type Screen string

const (
	ScreenHome    Screen = "home"
	ScreenCatalog Screen = "catalog"
)

// ParseScreen maps a config value to a screen, defaulting to home
func ParseScreen(s string) Screen {
	if Screen(s) == ScreenCatalog {
		return ScreenCatalog
	}
	return ScreenHome
}

// Health is the last known reachability of the catalog service
type Health int

const (
	HealthUnknown Health = iota
	HealthOnline
	HealthOffline
)

func (h Health) String() string {
	switch h {
	case HealthOnline:
		return "online"
	case HealthOffline:
		return "offline"
	default:
		return "checking"
	}
}

// AppState contains the UI state that is not owned by the search store
type AppState struct {
	Screen Screen

	// Result list cursor
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int // rows available for results

	ShowHelp      bool
	StatusMessage string // transient status bar message

	Health       Health
	HealthDetail string // reason when offline

	// LastSubmitted is the last query text sent to the dispatcher, used for retry
	LastSubmitted string
}

// NewAppState creates a new application state
func NewAppState(start Screen) *AppState {
	return &AppState{
		Screen:         start,
		ViewportHeight: 10, // updated on the first WindowSizeMsg
	}
}

// ResetCursor moves the result cursor back to the first row
func (s *AppState) ResetCursor() {
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// SetHealth records a probe result
func (s *AppState) SetHealth(online bool, detail string) {
	if online {
		s.Health = HealthOnline
		s.HealthDetail = ""
		return
	}
	s.Health = HealthOffline
	s.HealthDetail = detail
}
