package testutil

import (
	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// OpGenConfig configures the operation generator. Rates are percentages
// and the op rates should add up to 100; whatever is left over goes to
// show.
type OpGenConfig struct {
	NewRate    int
	DraftRate  int
	AddRate    int
	EditRate   int
	RenameRate int
	DoneRate   int
	RemoveRate int
	YesRate    int
	NoRate     int
	ListRate   int

	// InvalidIDRate is the percentage of id references that use ids which
	// do not exist.
	InvalidIDRate int

	// InvalidInputRate is the percentage of names that are empty.
	InvalidInputRate int
}

// DefaultOpGenConfig returns a balanced configuration.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		NewRate:          10,
		DraftRate:        15,
		AddRate:          15,
		EditRate:         12,
		RenameRate:       12,
		DoneRate:         8,
		RemoveRate:       10,
		YesRate:          7,
		NoRate:           4,
		ListRate:         4,
		InvalidIDRate:    15,
		InvalidInputRate: 10,
	}
}

// seedNames are the names generated ops draw from. Inner double spaces,
// padding and a blank name check that text arguments are taken verbatim.
var seedNames = []string{
	"Robot App",
	"Weather Station",
	"Garden  Planner",
	"Todo",
	"Chess Bot",
	"Recipe Box",
	"Music Lab",
	"Photo Wall",
	"  Padded Name ",
	"   ",
}

// invalidIDs are ids that never exist. Counter ids start at P1.
var invalidIDs = []string{"", "nonexistent", "P0", "P999"}

// opKind enumerates generated operations in rate order.
type opKind int

const (
	kindNew opKind = iota
	kindDraft
	kindAdd
	kindEdit
	kindRename
	kindDone
	kindRemove
	kindYes
	kindNo
	kindList
	kindShow
)

func (c *OpGenConfig) rates() []int {
	return []int{
		c.NewRate, c.DraftRate, c.AddRate, c.EditRate, c.RenameRate,
		c.DoneRate, c.RemoveRate, c.YesRate, c.NoRate, c.ListRate,
	}
}

// kindFor maps a choice in [0,100) to an op kind.
func (c *OpGenConfig) kindFor(choice int) opKind {
	cumulative := 0

	for kind, rate := range c.rates() {
		cumulative += rate
		if choice < cumulative {
			return opKind(kind)
		}
	}

	return kindShow
}

// choiceFor is the inverse of kindFor: the smallest choice selecting kind.
// It panics if kind has a zero rate.
func (c *OpGenConfig) choiceFor(kind opKind) int {
	cumulative := 0

	for k, rate := range c.rates() {
		if opKind(k) == kind {
			if rate == 0 {
				panic("op kind has zero rate")
			}

			return cumulative
		}

		cumulative += rate
	}

	if cumulative >= 100 {
		panic("show has zero rate")
	}

	return cumulative
}

// OpGenerator generates deterministic operations from a byte stream.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
	model  *spec.Model
}

// NewOpGenerator creates a new operation generator. The model is read to
// pick ids that exist, so it must be the model the ops are applied to.
func NewOpGenerator(fuzzBytes []byte, model *spec.Model, cfg *OpGenConfig) *OpGenerator {
	return &OpGenerator{
		stream: NewByteStream(fuzzBytes),
		config: *cfg,
		model:  model,
	}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation.
func (g *OpGenerator) NextOp() Op {
	ids := g.model.IDs()

	switch g.config.kindFor(int(g.stream.NextByte()) % 100) {
	case kindNew:
		return OpNew{}
	case kindDraft:
		return OpDraft{Text: g.genName()}
	case kindAdd:
		return &OpAdd{}
	case kindEdit:
		return OpEdit{ID: g.pickID(ids)}
	case kindRename:
		id := g.pickID(ids)

		return OpRename{ID: id, Text: g.genName()}
	case kindDone:
		return OpDone{ID: g.pickID(ids)}
	case kindRemove:
		return OpRemove{ID: g.pickID(ids)}
	case kindYes:
		return OpYes{}
	case kindNo:
		return OpNo{}
	case kindList:
		return OpList{}
	default:
		return OpShow{ID: g.pickID(ids)}
	}
}

func (g *OpGenerator) genName() string {
	if g.shouldBeInvalid() {
		return ""
	}

	return seedNames[g.stream.NextInt(len(seedNames))]
}

func (g *OpGenerator) pickID(ids []string) string {
	if len(ids) == 0 || g.shouldUseInvalidID() {
		return invalidIDs[g.stream.NextInt(len(invalidIDs))]
	}

	return ids[g.stream.NextInt(len(ids))]
}

func (g *OpGenerator) shouldBeInvalid() bool {
	return int(g.stream.NextByte())%100 < g.config.InvalidInputRate
}

func (g *OpGenerator) shouldUseInvalidID() bool {
	return int(g.stream.NextByte())%100 < g.config.InvalidIDRate
}
