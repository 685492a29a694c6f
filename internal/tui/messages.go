package tui

type progressMsg struct {
	percent int
}

// countMsg carries the records attempted so far and the total, when known.
type countMsg struct {
	done  int
	total int
}

type noticeMsg struct {
	text string
}

type syncDoneMsg struct {
	message string
	err     error
}
