package ui

// healthMsg carries the result of a catalog health probe
type healthMsg struct {
	err error
}

// pagerDoneMsg is sent when the pager exits
type pagerDoneMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
