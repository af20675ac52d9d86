// Package project holds the in-memory project list together with the UI
// mode state that drives it: which project is being edited, which one is
// waiting for delete confirmation, and the create form.
//
// Every operation is total. Stale or unknown ids, an empty draft on commit,
// and confirming with nothing pending are absorbed as no-ops, because UI
// events can reach the store after the project they refer to is gone.
//
// Name edits are live: UpdateProjectName changes the stored name on every
// call and there is no way to revert it. Creation is buffered: the draft
// name only becomes a project on CommitCreate.
//
// A Store is owned by a single session and is not safe for concurrent use.
package project

import (
	"slices"

	"go.uber.org/zap"
)

// maxIDAttempts bounds how often CommitCreate asks the generator for a
// fresh id when it keeps returning ids that were already issued.
const maxIDAttempts = 5

// Options configures a Store. Zero values select the defaults.
type Options struct {
	// IDs allocates project ids. Defaults to NewCounter("P").
	IDs IDGenerator

	// Clock stamps new projects. Defaults to SystemClock.
	Clock Clock

	// DateLayout formats CreatedDate. Defaults to DefaultDateLayout.
	DateLayout string

	// Logger receives transition logs. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Store is the project list plus its UI mode state.
type Store struct {
	ids        IDGenerator
	clock      Clock
	dateLayout string
	log        *zap.Logger

	projects        []Project
	editingID       string
	pendingDeleteID string
	addFormVisible  bool
	draftName       string

	// issued holds every id ever handed out, including deleted ones.
	issued map[string]struct{}

	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn func(Snapshot)
}

// New returns an empty store.
func New(opts Options) *Store {
	s := &Store{
		ids:        opts.IDs,
		clock:      opts.Clock,
		dateLayout: opts.DateLayout,
		log:        opts.Logger,
		projects:   []Project{},
		issued:     make(map[string]struct{}),
	}

	if s.ids == nil {
		s.ids = NewCounter("P")
	}

	if s.clock == nil {
		s.clock = SystemClock{}
	}

	if s.dateLayout == "" {
		s.dateLayout = DefaultDateLayout
	}

	if s.log == nil {
		s.log = zap.NewNop()
	}

	return s
}

// Subscribe registers fn to be called with a fresh snapshot after every
// operation that changed observable state. Subscribers run synchronously in
// the order they subscribed. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}

	snap := s.Snapshot()

	// Copy so a subscriber may unsubscribe while being called.
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(snap)
	}
}

// ShowCreateForm opens the create form.
func (s *Store) ShowCreateForm() {
	if s.addFormVisible {
		return
	}

	s.addFormVisible = true
	s.log.Debug("create form shown")
	s.notify()
}

// UpdateDraftName replaces the draft name. Any string is accepted.
func (s *Store) UpdateDraftName(text string) {
	if s.draftName == text {
		return
	}

	s.draftName = text
	s.log.Debug("draft updated", zap.String("name", text))
	s.notify()
}

// CommitCreate turns the draft into a project appended to the end of the
// list, then clears the draft and closes the form. An empty draft leaves
// everything untouched. The bool reports whether a project was created.
func (s *Store) CommitCreate() (Project, bool) {
	if s.draftName == "" {
		s.log.Debug("create rejected", zap.String("reason", "empty draft name"))

		return Project{}, false
	}

	id, ok := s.allocateID()
	if !ok {
		return Project{}, false
	}

	p := Project{
		ID:          id,
		Name:        s.draftName,
		CreatedDate: s.clock.Now().Format(s.dateLayout),
	}

	s.projects = append(s.projects, p)
	s.draftName = ""
	s.addFormVisible = false

	s.log.Debug("project created",
		zap.String("id", p.ID),
		zap.String("name", p.Name),
		zap.String("created_date", p.CreatedDate))
	s.notify()

	return p, true
}

func (s *Store) allocateID() (string, bool) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := s.ids.NextID()
		if err != nil {
			s.log.Error("id generation failed", zap.Int("attempt", attempt), zap.Error(err))

			return "", false
		}

		if id == "" {
			s.log.Error("id generator returned empty id", zap.Int("attempt", attempt))

			continue
		}

		if _, dup := s.issued[id]; dup {
			s.log.Warn("id generator returned issued id", zap.String("id", id), zap.Int("attempt", attempt))

			continue
		}

		s.issued[id] = struct{}{}

		return id, true
	}

	s.log.Error("no unique id after repeated attempts", zap.Int("attempts", maxIDAttempts))

	return "", false
}

// StartEdit puts the project into edit mode, implicitly ending any other
// edit. Unknown ids are ignored.
func (s *Store) StartEdit(id string) {
	if s.indexOf(id) < 0 {
		s.log.Debug("start edit ignored", zap.String("id", id), zap.String("reason", "unknown project"))

		return
	}

	if s.editingID == id {
		return
	}

	if s.editingID != "" {
		s.log.Debug("edit ended", zap.String("id", s.editingID), zap.String("reason", "another project entered edit mode"))
	}

	s.editingID = id
	s.log.Debug("edit started", zap.String("id", id))
	s.notify()
}

// UpdateProjectName sets the project's name immediately. There is no edit
// buffer, so the change is visible at once and cannot be reverted. Unknown
// ids are ignored. Edit mode is not checked here; views only call this
// while the project is being edited.
func (s *Store) UpdateProjectName(id, text string) {
	idx := s.indexOf(id)
	if idx < 0 {
		s.log.Debug("rename ignored", zap.String("id", id), zap.String("reason", "unknown project"))

		return
	}

	if s.projects[idx].Name == text {
		return
	}

	s.projects[idx].Name = text
	s.log.Debug("project renamed", zap.String("id", id), zap.String("name", text))
	s.notify()
}

// ConfirmEdit leaves edit mode if id is the project being edited.
func (s *Store) ConfirmEdit(id string) {
	if id == "" || s.editingID != id {
		return
	}

	s.editingID = ""
	s.log.Debug("edit confirmed", zap.String("id", id))
	s.notify()
}

// RequestDelete marks the project as waiting for delete confirmation,
// replacing any earlier request. Unknown ids are ignored.
func (s *Store) RequestDelete(id string) {
	if s.indexOf(id) < 0 {
		s.log.Debug("delete request ignored", zap.String("id", id), zap.String("reason", "unknown project"))

		return
	}

	if s.pendingDeleteID == id {
		return
	}

	s.pendingDeleteID = id
	s.log.Debug("delete requested", zap.String("id", id))
	s.notify()
}

// ConfirmDelete removes the pending project, keeping the order of the
// rest. If it was being edited, edit mode ends too.
func (s *Store) ConfirmDelete() {
	id := s.pendingDeleteID
	if id == "" {
		s.log.Debug("confirm delete ignored", zap.String("reason", "nothing pending"))

		return
	}

	if idx := s.indexOf(id); idx >= 0 {
		s.projects = slices.Delete(s.projects, idx, idx+1)
	}

	s.pendingDeleteID = ""

	if s.editingID == id {
		s.editingID = ""
	}

	s.log.Debug("project deleted", zap.String("id", id))
	s.notify()
}

// CancelDelete drops the pending delete request, if any.
func (s *Store) CancelDelete() {
	if s.pendingDeleteID == "" {
		return
	}

	s.log.Debug("delete cancelled", zap.String("id", s.pendingDeleteID))
	s.pendingDeleteID = ""
	s.notify()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Projects:         s.Projects(),
		EditingProjectID: s.editingID,
		PendingDeleteID:  s.pendingDeleteID,
		AddFormVisible:   s.addFormVisible,
		DraftName:        s.draftName,
	}
}

// Projects returns a copy of the list in insertion order.
func (s *Store) Projects() []Project {
	out := make([]Project, len(s.projects))
	copy(out, s.projects)

	return out
}

// Project returns the project with id.
func (s *Store) Project(id string) (Project, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Project{}, false
	}

	return s.projects[idx], true
}

// Len returns the number of projects.
func (s *Store) Len() int { return len(s.projects) }

// IsEditing reports whether id is in edit mode.
func (s *Store) IsEditing(id string) bool {
	return id != "" && s.editingID == id
}

// EditingID returns the project in edit mode, or "".
func (s *Store) EditingID() string { return s.editingID }

// PendingDeleteID returns the project awaiting delete confirmation, or "".
func (s *Store) PendingDeleteID() string { return s.pendingDeleteID }

// AddFormVisible reports whether the create form is open.
func (s *Store) AddFormVisible() bool { return s.addFormVisible }

// DraftName returns the text typed into the create form.
func (s *Store) DraftName() string { return s.draftName }

// Status returns the UI state of id.
func (s *Store) Status(id string) Status {
	if s.indexOf(id) >= 0 {
		switch id {
		case s.pendingDeleteID:
			return StatusPendingDelete
		case s.editingID:
			return StatusEditing
		default:
			return StatusNormal
		}
	}

	if _, ok := s.issued[id]; ok {
		return StatusDeleted
	}

	return StatusUnknown
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}

	return slices.IndexFunc(s.projects, func(p Project) bool { return p.ID == id })
}
