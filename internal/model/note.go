package model

// Note is a placeholder entity. It has no repository.
type Note struct {
	NoteID int     `json:"note_id"`
	Text   *string `json:"text,omitempty"`
}
