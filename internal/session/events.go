package session

// Events are the session's state-change notifications. The rendering layer
// registers the callbacks it cares about; nil callbacks are skipped. This
// replaces broadcast-style UI events with an explicit contract owned by
// the session.
type Events struct {
	// BingoCountChanged fires after any mutation that recomputed the count.
	BingoCountChanged func(count int)
	// StateSaved fires after a sync attempt with the overall outcome.
	StateSaved func(ok bool)
	// WinnersChanged fires when a sync or reset touched the leaderboard.
	WinnersChanged func()
}

func (e *Events) bingoCountChanged(count int) {
	if e != nil && e.BingoCountChanged != nil {
		e.BingoCountChanged(count)
	}
}

func (e *Events) stateSaved(ok bool) {
	if e != nil && e.StateSaved != nil {
		e.StateSaved(ok)
	}
}

func (e *Events) winnersChanged() {
	if e != nil && e.WinnersChanged != nil {
		e.WinnersChanged()
	}
}
