package project

import "time"

// DefaultDateLayout renders dates like 3/14/2025.
const DefaultDateLayout = "1/2/2006"

// Project is one entry in the list. ID and CreatedDate never change after
// creation; Name is edited in place.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedDate string `json:"created_date"`
}

// Snapshot is a copy of everything a view needs to render the page.
//
// An empty EditingProjectID or PendingDeleteID means "none". Projects is
// never nil so that an empty list encodes as [].
type Snapshot struct {
	Projects         []Project `json:"projects"`
	EditingProjectID string    `json:"editing_project_id"`
	PendingDeleteID  string    `json:"pending_delete_id"`
	AddFormVisible   bool      `json:"add_form_visible"`
	DraftName        string    `json:"draft_name"`
}

// Find returns the project with id from the snapshot.
func (s Snapshot) Find(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}

	return Project{}, false
}

// Status is the per-project UI state.
type Status int

// Project states. A project that is being edited and is also awaiting
// delete confirmation reports StatusPendingDelete.
const (
	StatusUnknown Status = iota
	StatusNormal
	StatusEditing
	StatusPendingDelete
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusEditing:
		return "editing"
	case StatusPendingDelete:
		return "pending-delete"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Clock supplies the creation time for new projects.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in local time.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
