package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// decode runs seed through a generator, applying each op to the model only,
// and returns the op strings.
func decode(t *testing.T, seed []byte) []string {
	t.Helper()

	cfg := DefaultOpGenConfig()
	model := spec.New()
	gen := NewOpGenerator(seed, model, &cfg)
	next := 1

	var ops []string

	for gen.HasMore() {
		op := gen.NextOp()
		ops = append(ops, op.String())

		switch o := op.(type) {
		case *OpAdd:
			o.CreatedID = fmt.Sprintf("P%d", next)

			if _, err := model.Add(spec.FuzzAddInput{ID: o.CreatedID}); err == nil {
				next++
			}
		default:
			op.ApplyModel(&Harness{Model: model})
		}
	}

	return ops
}

func Test_SeedBuilder_Encodes_Ops_When_Decoded_By_Generator(t *testing.T) {
	t.Parallel()

	got := decode(t, SeedEditSwitching())

	want := []string{
		"New()", `Draft("Todo")`, "Add()",
		"New()", `Draft("Recipe Box")`, "Add()",
		"Edit(P1)",
		"Edit(P2)",
		`Rename(P1, "Photo Wall")`,
		`Rename(P2, "Photo Wall")`,
		"Done(P1)",
		"List()",
		"Done(P2)",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded ops mismatch (-want +got):\n%s", diff)
	}
}

func Test_SeedBuilder_Tracks_IDs_When_Projects_Deleted(t *testing.T) {
	t.Parallel()

	got := decode(t, SeedIDsNotReused())

	assert.Equal(t, "Remove(P2)", got[6])
	assert.Equal(t, "Show(P3)", got[11])
}

func Test_SeedBuilder_Encodes_Invalid_IDs_When_List_Empty(t *testing.T) {
	t.Parallel()

	got := decode(t, SeedStaleIDs())

	require.GreaterOrEqual(t, len(got), 7)
	assert.Equal(t, "Edit(nonexistent)", got[0])
	assert.Equal(t, "Remove(P999)", got[1])
	assert.Equal(t, "Edit(P0)", got[5])
	assert.Equal(t, "Remove()", got[6])
}

func Test_SeedBuilder_Encodes_Empty_Name_When_Name_Blank(t *testing.T) {
	t.Parallel()

	seed := NewSeedBuilder(defaultSeedConfig()).New().Draft("").Bytes()

	assert.Equal(t, []string{"New()", `Draft("")`}, decode(t, seed))
}

func Test_SeedBuilder_Panics_When_ID_Unknown(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewSeedBuilder(defaultSeedConfig()).Edit("P1")
	})

	assert.Panics(t, func() {
		NewSeedBuilder(defaultSeedConfig()).New().Draft("Not A Seed Name")
	})
}

func Test_OpGenConfig_Maps_Every_Kind_When_Rates_Default(t *testing.T) {
	t.Parallel()

	cfg := DefaultOpGenConfig()

	total := 0
	for _, rate := range cfg.rates() {
		total += rate
	}

	assert.Less(t, total, 100, "show gets the remaining share")

	for kind := kindNew; kind <= kindShow; kind++ {
		assert.Equal(t, kind, cfg.kindFor(cfg.choiceFor(kind)))
	}
}

func Test_ByteStream_Returns_Zero_Values_When_Exhausted(t *testing.T) {
	t.Parallel()

	s := NewByteStream([]byte{7})

	assert.True(t, s.HasMore())
	assert.Equal(t, 3, s.NextInt(4))
	assert.False(t, s.HasMore())
	assert.Equal(t, 0, s.NextInt(4))
	assert.False(t, s.NextBool())
	assert.Empty(t, s.NextName(10))
}

func Test_ByteStream_Keeps_Spaces_When_Generating_Names(t *testing.T) {
	t.Parallel()

	// length 4, then ' ' 'a' ' ' ' ' (62 and 63 are spaces)
	s := NewByteStream([]byte{4, 62, 0, 63, 62, 2, 62, 63})

	assert.Equal(t, " a  ", s.NextName(10))
	assert.Equal(t, "  ", s.NextName(10))
}

func Test_SeedBuilder_Encodes_Padded_Names_When_Decoded_By_Generator(t *testing.T) {
	t.Parallel()

	got := decode(t, SeedPaddedNames())

	want := []string{
		"New()", `Draft("   ")`, "Add()",
		"New()", `Draft("  Padded Name ")`, "Add()",
		"Edit(P1)",
		`Rename(P1, "  Padded Name ")`,
		"Done(P1)",
		"List()",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded ops mismatch (-want +got):\n%s", diff)
	}
}
