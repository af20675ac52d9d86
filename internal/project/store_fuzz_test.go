package project_test

import (
	"fmt"
	"testing"

	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/testutil"
)

// FuzzStore_Keeps_Invariants drives the store with arbitrary operation
// sequences and checks the list invariants after every step.
func FuzzStore_Keeps_Invariants(f *testing.F) {
	f.Add([]byte{0, 1, 3, 2, 4, 5, 6})
	f.Add([]byte{1, 2, 'a', 2, 3, 0, 6, 0, 7, 8})
	f.Add([]byte{1, 1, 'x', 2, 1, 1, 'y', 2, 3, 1, 6, 0, 7, 3, 0, 4, 0, 'z', 5, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		s := project.New(project.Options{Clock: fixedClock()})
		stream := testutil.NewByteStream(data)

		var history []string

		for stream.HasMore() && len(history) < 500 {
			history = append(history, applyRandomOp(s, stream))

			if err := checkInvariants(s); err != nil {
				t.Fatalf("%v\nops:\n%v", err, history)
			}
		}
	})
}

func applyRandomOp(s *project.Store, stream *testutil.ByteStream) string {
	pickID := func() string {
		projects := s.Projects()
		if len(projects) == 0 || stream.NextInt(8) == 0 {
			return fmt.Sprintf("P%d", stream.NextInt(20))
		}

		return projects[stream.NextInt(len(projects))].ID
	}

	switch stream.NextInt(10) {
	case 0:
		s.ShowCreateForm()

		return "ShowCreateForm()"
	case 1:
		name := ""
		if stream.NextBool() {
			name = stream.NextString(6)
		}

		s.UpdateDraftName(name)

		return fmt.Sprintf("UpdateDraftName(%q)", name)
	case 2:
		s.CommitCreate()

		return "CommitCreate()"
	case 3:
		id := pickID()
		s.StartEdit(id)

		return fmt.Sprintf("StartEdit(%s)", id)
	case 4:
		id := pickID()
		name := stream.NextString(6)
		s.UpdateProjectName(id, name)

		return fmt.Sprintf("UpdateProjectName(%s, %q)", id, name)
	case 5:
		id := pickID()
		s.ConfirmEdit(id)

		return fmt.Sprintf("ConfirmEdit(%s)", id)
	case 6:
		id := pickID()
		s.RequestDelete(id)

		return fmt.Sprintf("RequestDelete(%s)", id)
	case 7:
		s.ConfirmDelete()

		return "ConfirmDelete()"
	case 8:
		s.CancelDelete()

		return "CancelDelete()"
	default:
		id := pickID()
		s.ConfirmEdit(id)
		s.ConfirmEdit(id)

		return fmt.Sprintf("ConfirmEdit(%s) x2", id)
	}
}

func checkInvariants(s *project.Store) error {
	snap := s.Snapshot()
	seen := make(map[string]bool, len(snap.Projects))

	for _, p := range snap.Projects {
		if p.ID == "" {
			return fmt.Errorf("project with empty id: %+v", p)
		}

		if seen[p.ID] {
			return fmt.Errorf("duplicate id %s", p.ID)
		}

		seen[p.ID] = true
	}

	if snap.EditingProjectID != "" && !seen[snap.EditingProjectID] {
		return fmt.Errorf("editing id %s not in list", snap.EditingProjectID)
	}

	if snap.PendingDeleteID != "" && !seen[snap.PendingDeleteID] {
		return fmt.Errorf("pending delete id %s not in list", snap.PendingDeleteID)
	}

	return nil
}
