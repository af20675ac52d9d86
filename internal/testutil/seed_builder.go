package testutil

import (
	"fmt"
	"slices"

	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// SeedBuilder builds deterministic byte seeds for OpGenerator without
// hand-writing raw byte sequences.
//
// The builder encodes values in the order OpGenerator consumes them. It
// replays every op on its own model so ids can be referenced the way the
// shell issues them (P1, P2, ...), even after deletes.
type SeedBuilder struct {
	cfg    OpGenConfig
	model  *spec.Model
	nextID int
	data   []byte
}

// NewSeedBuilder creates a new builder for the given OpGenerator config.
func NewSeedBuilder(cfg *OpGenConfig) *SeedBuilder {
	if cfg == nil {
		panic("seed builder: cfg must not be nil")
	}

	if cfg.InvalidIDRate <= 0 || cfg.InvalidIDRate >= 100 || cfg.InvalidInputRate <= 0 || cfg.InvalidInputRate >= 100 {
		panic("seed builder: invalid rates must be between 1 and 99")
	}

	return &SeedBuilder{cfg: *cfg, model: spec.New(), nextID: 1}
}

// Bytes returns a copy of the built seed bytes.
func (b *SeedBuilder) Bytes() []byte {
	return append([]byte(nil), b.data...)
}

// New appends a new operation.
func (b *SeedBuilder) New() *SeedBuilder {
	b.op(kindNew)
	b.model.ShowForm()

	return b
}

// Draft appends a draft operation. An empty name encodes the invalid input.
func (b *SeedBuilder) Draft(name string) *SeedBuilder {
	b.op(kindDraft)
	b.name(name)
	_ = b.model.Draft(spec.UserDraftInput{Text: name})

	return b
}

// Add appends an add operation.
func (b *SeedBuilder) Add() *SeedBuilder {
	b.op(kindAdd)

	_, err := b.model.Add(spec.FuzzAddInput{ID: fmt.Sprintf("P%d", b.nextID)})
	if err == nil {
		b.nextID++
	}

	return b
}

// Create appends new, draft and add for a project called name.
func (b *SeedBuilder) Create(name string) *SeedBuilder {
	return b.New().Draft(name).Add()
}

// Edit appends an edit operation on an existing id.
func (b *SeedBuilder) Edit(id string) *SeedBuilder {
	b.op(kindEdit)
	b.pickID(id)
	_ = b.model.Edit(spec.UserIDInput{ID: id})

	return b
}

// EditInvalid appends an edit operation on an id that does not exist.
func (b *SeedBuilder) EditInvalid(id string) *SeedBuilder {
	b.op(kindEdit)
	b.pickInvalidID(id)

	return b
}

// Rename appends a rename operation on an existing id.
func (b *SeedBuilder) Rename(id, name string) *SeedBuilder {
	b.op(kindRename)
	b.pickID(id)
	b.name(name)
	_ = b.model.Rename(spec.UserRenameInput{ID: id, Text: name})

	return b
}

// Done appends a done operation on an existing id.
func (b *SeedBuilder) Done(id string) *SeedBuilder {
	b.op(kindDone)
	b.pickID(id)
	_ = b.model.Done(spec.UserIDInput{ID: id})

	return b
}

// Remove appends an rm operation on an existing id.
func (b *SeedBuilder) Remove(id string) *SeedBuilder {
	b.op(kindRemove)
	b.pickID(id)
	_ = b.model.Remove(spec.UserIDInput{ID: id})

	return b
}

// RemoveInvalid appends an rm operation on an id that does not exist.
func (b *SeedBuilder) RemoveInvalid(id string) *SeedBuilder {
	b.op(kindRemove)
	b.pickInvalidID(id)

	return b
}

// Yes appends a yes operation.
func (b *SeedBuilder) Yes() *SeedBuilder {
	b.op(kindYes)
	_, _ = b.model.Yes()

	return b
}

// No appends a no operation.
func (b *SeedBuilder) No() *SeedBuilder {
	b.op(kindNo)
	b.model.No()

	return b
}

// List appends an ls operation.
func (b *SeedBuilder) List() *SeedBuilder {
	b.op(kindList)

	return b
}

// Show appends a show operation on an existing id.
func (b *SeedBuilder) Show(id string) *SeedBuilder {
	b.op(kindShow)
	b.pickID(id)

	return b
}

func (b *SeedBuilder) op(kind opKind) {
	b.appendInt(b.cfg.choiceFor(kind))
}

func (b *SeedBuilder) name(name string) {
	if name == "" {
		b.inputInvalid()

		return
	}

	idx := slices.Index(seedNames, name)
	if idx < 0 {
		panic(fmt.Sprintf("seed builder: unknown name %q (known=%v)", name, seedNames))
	}

	b.inputValid()
	b.appendInt(idx)
}

func (b *SeedBuilder) pickID(id string) {
	ids := b.model.IDs()

	idx := slices.Index(ids, id)
	if idx < 0 {
		panic(fmt.Sprintf("seed builder: unknown id %q (known=%v)", id, ids))
	}

	b.idValid()
	b.appendInt(idx)
}

func (b *SeedBuilder) pickInvalidID(id string) {
	idx := slices.Index(invalidIDs, id)
	if idx < 0 {
		panic(fmt.Sprintf("seed builder: %q is not one of the invalid ids %q", id, invalidIDs))
	}

	// With no projects the generator skips the validity byte.
	if len(b.model.IDs()) > 0 {
		b.idInvalid()
	}

	b.appendInt(idx)
}

func (b *SeedBuilder) inputValid()   { b.appendInt(99) }
func (b *SeedBuilder) inputInvalid() { b.appendInt(0) }
func (b *SeedBuilder) idValid()      { b.appendInt(99) }
func (b *SeedBuilder) idInvalid()    { b.appendInt(0) }

func (b *SeedBuilder) appendInt(v int) {
	if v < 0 || v > 255 {
		panic(fmt.Sprintf("seed builder: value %d does not fit in a byte", v))
	}

	b.data = append(b.data, byte(v))
}
