package tui

// View represents the current view state of the application.
type View int

const (
	ViewMenu View = iota
	ViewBrowse
	ViewHot
	ViewWatchlist
	ViewDetail
	ViewSetupToken
)

// String returns the string representation of a View.
func (v View) String() string {
	switch v {
	case ViewMenu:
		return "Menu"
	case ViewBrowse:
		return "Browse"
	case ViewHot:
		return "Hot"
	case ViewWatchlist:
		return "Watchlist"
	case ViewDetail:
		return "Detail"
	case ViewSetupToken:
		return "SetupToken"
	default:
		return "Unknown"
	}
}
