package portfolio

// Content is the static text of the page.
type Content struct {
	Name     string
	Tagline  string
	Logo     string
	About    []string
	Projects []Project
	// Console lines are revealed one by one when debug mode opens.
	Console []string
}

// Project is one entry of the projects list.
type Project struct {
	Title string
	Stack string
}

// DefaultContent returns the page shipped with the binaries.
func DefaultContent() Content {
	return Content{
		Name:    "Alex Morgan",
		Tagline: "Flutter & Go developer",
		Logo:    "</> AM",
		About: []string{
			"I build cross-platform apps with Flutter and the services behind them in Go.",
			"Currently into terminal UIs, SSH-served apps and small game engines.",
		},
		Projects: []Project{
			{Title: "Pocket Ledger", Stack: "Flutter, Riverpod, SQLite"},
			{Title: "Trailhead API", Stack: "Go, gin, PostgreSQL"},
			{Title: "Widget Lab", Stack: "Flutter, custom painters"},
		},
		Console: []string{
			"> flutter run --debug",
			"[ERROR] RenderFlex overflowed by 42 pixels on the right",
			"[WARNING] setState() called after dispose()",
			"[INFO] Hot reload failed, entering debug mode...",
			"[DEBUG] Launching emergency mini-game",
		},
	}
}
