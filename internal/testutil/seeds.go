package testutil

// Seed bundles a human-readable name with seed bytes.
//
// Curated seeds are hand-crafted op sequences for scenarios random fuzzing
// might take a long time to reach. Each one produces a deterministic op
// stream when fed to OpGenerator:
//
//	testutil.RunBehaviorWithSeed(t, testutil.SeedCreateProject(), cfg)
type Seed struct {
	Name string
	Data []byte
}

// CuratedSeeds returns all curated seeds with descriptive names.
func CuratedSeeds() []Seed {
	return []Seed{
		{Name: "create_project", Data: SeedCreateProject()},
		{Name: "rename_project", Data: SeedRenameProject()},
		{Name: "cancel_delete", Data: SeedCancelDelete()},
		{Name: "delete_while_editing", Data: SeedDeleteWhileEditing()},
		{Name: "stale_ids", Data: SeedStaleIDs()},
		{Name: "empty_names", Data: SeedEmptyNames()},
		{Name: "edit_switching", Data: SeedEditSwitching()},
		{Name: "replaced_delete_request", Data: SeedReplacedDeleteRequest()},
		{Name: "ids_not_reused", Data: SeedIDsNotReused()},
		{Name: "padded_names", Data: SeedPaddedNames()},
	}
}

func defaultSeedConfig() *OpGenConfig {
	cfg := DefaultOpGenConfig()

	return &cfg
}

// SeedCreateProject opens the form, names the draft and commits it.
func SeedCreateProject() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		New().
		Draft("Robot App").
		Add().
		List().
		Bytes()
}

// SeedRenameProject edits a project's name and confirms the edit.
func SeedRenameProject() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("Todo").
		Edit("P1").
		Rename("P1", "Chess Bot").
		Done("P1").
		Show("P1").
		Bytes()
}

// SeedCancelDelete asks to delete a project and keeps it.
func SeedCancelDelete() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("Todo").
		Remove("P1").
		No().
		Yes(). // nothing pending any more
		List().
		Bytes()
}

// SeedDeleteWhileEditing deletes the project that is being edited.
func SeedDeleteWhileEditing() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("Todo").
		Edit("P1").
		Remove("P1").
		Yes().
		List().
		Bytes()
}

// SeedStaleIDs references ids that do not exist, before and after the
// list has projects.
func SeedStaleIDs() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		EditInvalid("nonexistent").
		RemoveInvalid("P999").
		Create("Music Lab").
		EditInvalid("P0").
		RemoveInvalid("").
		Show("P1").
		Bytes()
}

// SeedEmptyNames commits an empty draft, drafts with the form closed and
// renames a project to nothing while editing.
func SeedEmptyNames() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Draft("Todo"). // form closed
		Add().         // form closed
		New().
		Add(). // empty draft
		Draft("Garden  Planner").
		Draft("").
		Add(). // cleared draft
		Draft("Garden  Planner").
		Add().
		Edit("P1").
		Rename("P1", "").
		Done("P1").
		List().
		Bytes()
}

// SeedEditSwitching starts an edit while another is active and renames a
// project that is no longer being edited.
func SeedEditSwitching() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("Todo").
		Create("Recipe Box").
		Edit("P1").
		Edit("P2").
		Rename("P1", "Photo Wall"). // P1 not in edit mode
		Rename("P2", "Photo Wall").
		Done("P1"). // no-op, P2 still edited
		List().
		Done("P2").
		Bytes()
}

// SeedReplacedDeleteRequest replaces a pending delete with another one.
func SeedReplacedDeleteRequest() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("Todo").
		Create("Recipe Box").
		Edit("P1").
		Remove("P1").
		Remove("P2").
		Yes(). // deletes P2, P1 stays in edit mode
		List().
		Bytes()
}

// SeedIDsNotReused deletes the newest project and creates another.
func SeedIDsNotReused() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("Todo").
		Create("Recipe Box").
		Remove("P2").
		Yes().
		Create("Music Lab"). // P3, not P2
		Show("P3").
		List().
		Bytes()
}

// SeedPaddedNames creates projects whose names are blank or padded and
// renames one to a padded name.
func SeedPaddedNames() []byte {
	return NewSeedBuilder(defaultSeedConfig()).
		Create("   ").
		Create("  Padded Name ").
		Edit("P1").
		Rename("P1", "  Padded Name ").
		Done("P1").
		List().
		Bytes()
}
