package state

// Stats summarises the history for listeners and clients.
type Stats struct {
	Committed int `json:"committed"`
	Redoable  int `json:"redoable"`
}

// History is the committed command log plus the redo buffer.
//
// Committing a new command always drops the redo buffer, so redo is only
// available directly after undo. History is not safe for concurrent use;
// the owner serializes access.
type History struct {
	committed []Command
	redo      []Command

	// OnChange is called after every mutating call, including undo and redo
	// calls that had nothing to move.
	OnChange func(Stats)
}

// NewHistory creates an empty history reporting changes to onChange.
func NewHistory(onChange func(Stats)) *History {
	return &History{OnChange: onChange}
}

// Commit seals cmd, appends it and clears the redo buffer.
func (h *History) Commit(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.Seal()
	h.committed = append(h.committed, cmd)
	h.redo = nil
	h.changed()
}

// Undo moves the newest committed command to the redo buffer.
// It reports whether anything moved.
func (h *History) Undo() bool {
	moved := false
	if n := len(h.committed); n > 0 {
		cmd := h.committed[n-1]
		h.committed[n-1] = nil
		h.committed = h.committed[:n-1]
		h.redo = append(h.redo, cmd)
		moved = true
	}
	h.changed()
	return moved
}

// Redo moves the newest undone command back onto the committed log.
// It reports whether anything moved.
func (h *History) Redo() bool {
	moved := false
	if n := len(h.redo); n > 0 {
		cmd := h.redo[n-1]
		h.redo[n-1] = nil
		h.redo = h.redo[:n-1]
		h.committed = append(h.committed, cmd)
		moved = true
	}
	h.changed()
	return moved
}

// Clear empties the committed log and the redo buffer.
func (h *History) Clear() {
	h.committed = nil
	h.redo = nil
	h.changed()
}

// Committed returns the visible commands, oldest first.
func (h *History) Committed() []Command {
	out := make([]Command, len(h.committed))
	copy(out, h.committed)
	return out
}

// Redoable returns the redo buffer; the last element is redone first.
func (h *History) Redoable() []Command {
	out := make([]Command, len(h.redo))
	copy(out, h.redo)
	return out
}

func (h *History) Stats() Stats {
	return Stats{Committed: len(h.committed), Redoable: len(h.redo)}
}

func (h *History) changed() {
	if h.OnChange != nil {
		h.OnChange(h.Stats())
	}
}
