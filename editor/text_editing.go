package editor

import (
	"unicode"

	"sopflow/flow"
)

// startEdit loads a node's label into the text buffer for inline editing.
func (e *Editor) startEdit(n flow.Node) {
	e.editingID = n.ID
	e.textBuffer = []rune(n.Label)
}

// Editing reports the node under inline label editing, if any.
func (e *Editor) Editing() (string, bool) {
	return e.editingID, e.editingID != ""
}

// TextBuffer returns the in-progress label text.
func (e *Editor) TextBuffer() string {
	return string(e.textBuffer)
}

// HandleTextKey processes one key while editing a label. Enter commits,
// Escape discards, backspace deletes; printable runes append.
func (e *Editor) HandleTextKey(key rune) {
	if e.editingID == "" {
		return
	}
	switch key {
	case '\r', '\n':
		e.CommitEdit()
	case 27: // ESC
		e.CancelEdit()
	case 127, 8: // Backspace
		if len(e.textBuffer) > 0 {
			e.textBuffer = e.textBuffer[:len(e.textBuffer)-1]
		}
	default:
		if unicode.IsPrint(key) {
			e.textBuffer = append(e.textBuffer, key)
		}
	}
}

// CommitEdit stores the edited label. The store keeps the previous label
// when the buffer trims to empty.
func (e *Editor) CommitEdit() {
	if e.editingID == "" {
		return
	}
	e.store.UpdateNodeLabel(e.editingID, string(e.textBuffer))
	e.editingID = ""
	e.textBuffer = nil
}

// CancelEdit discards the edit and restores the prior label.
func (e *Editor) CancelEdit() {
	e.editingID = ""
	e.textBuffer = nil
}
