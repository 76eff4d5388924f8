package domain

import "errors"

// EditorPhase identifies the state of a lesson editing session.
type EditorPhase string

const (
	EditorIdle            EditorPhase = "idle"
	EditorEditingNew      EditorPhase = "editing_new"
	EditorEditingExisting EditorPhase = "editing_existing"
)

var ErrEditorBusy = errors.New("editor already holds a draft")
var ErrEditorIdle = errors.New("editor holds no draft")

// Editor is the tagged state machine for a course editing session:
//
//	Idle → EditingNew(draft) → Idle        (on commit or cancel)
//	Idle → EditingExisting(id, draft) → Idle
//
// A draft opened with BeginNew has no lesson id until first persisted.
type Editor struct {
	phase    EditorPhase
	lessonID string
	draft    LessonDraft
}

// NewEditor returns an idle editor.
func NewEditor() *Editor {
	return &Editor{phase: EditorIdle}
}

// Phase returns the current phase.
func (e *Editor) Phase() EditorPhase { return e.phase }

// BeginNew opens an empty draft appended after the stored lessons at the
// given order index (see NextIndex).
func (e *Editor) BeginNew(orderIndex int) error {
	if e.phase != EditorIdle {
		return ErrEditorBusy
	}
	e.phase = EditorEditingNew
	e.lessonID = ""
	e.draft = LessonDraft{OrderIndex: orderIndex}
	return nil
}

// BeginEdit loads an existing lesson into the draft slot.
func (e *Editor) BeginEdit(l *Lesson) error {
	if e.phase != EditorIdle {
		return ErrEditorBusy
	}
	e.phase = EditorEditingExisting
	e.lessonID = l.ID
	e.draft = LessonDraft{
		LessonID:   l.ID,
		Title:      l.Title,
		Content:    l.Content,
		VideoURL:   l.VideoURL,
		Duration:   l.Duration,
		OrderIndex: l.OrderIndex,
	}
	return nil
}

// SetDraft replaces the editable fields of the held draft. The lesson id and
// order index stay pinned to what Begin* established.
func (e *Editor) SetDraft(d LessonDraft) error {
	if e.phase == EditorIdle {
		return ErrEditorIdle
	}
	d.LessonID = e.lessonID
	d.OrderIndex = e.draft.OrderIndex
	e.draft = d
	return nil
}

// Commit validates the draft, returns it, and resets the editor to idle.
// On validation failure the editor keeps the draft so the caller can fix it.
func (e *Editor) Commit() (LessonDraft, error) {
	if e.phase == EditorIdle {
		return LessonDraft{}, ErrEditorIdle
	}
	if err := e.draft.Validate(); err != nil {
		return LessonDraft{}, err
	}
	d := e.draft
	e.reset()
	return d, nil
}

// Cancel discards the draft and returns to idle.
func (e *Editor) Cancel() { e.reset() }

func (e *Editor) reset() {
	e.phase = EditorIdle
	e.lessonID = ""
	e.draft = LessonDraft{}
}
