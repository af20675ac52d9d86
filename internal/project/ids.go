package project

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ID schemes accepted by NewIDGenerator.
const (
	SchemeCounter = "counter"
	SchemeShort   = "short"
)

// ErrUnknownIDScheme is returned by NewIDGenerator for unsupported schemes.
var ErrUnknownIDScheme = errors.New("unknown id scheme")

// IDGenerator allocates project ids. Implementations must never return an
// empty id; the store treats "" as "no project".
type IDGenerator interface {
	NextID() (string, error)
}

// NewIDGenerator returns the generator for scheme.
// The prefix only applies to the counter scheme.
func NewIDGenerator(scheme, prefix string) (IDGenerator, error) {
	switch scheme {
	case "", SchemeCounter:
		return NewCounter(prefix), nil
	case SchemeShort:
		return ShortIDs{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIDScheme, scheme)
	}
}

// Counter hands out prefix1, prefix2, ... in order.
type Counter struct {
	prefix string
	next   uint64
}

// NewCounter returns a counter whose first id is prefix+"1".
func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix, next: 1}
}

// NextID implements IDGenerator.
func (c *Counter) NextID() (string, error) {
	id := c.prefix + strconv.FormatUint(c.next, 10)
	c.next++

	return id, nil
}

// ShortIDs derives 12-char Crockford base32 ids from fresh UUIDv7s.
type ShortIDs struct{}

// NextID implements IDGenerator.
func (ShortIDs) NextID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("new uuidv7: %w", err)
	}

	return ShortIDFromUUID(id)
}

const (
	shortIDLength = 12
	crockfordBase = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// ShortIDFromUUID derives a 12-char base32 (Crockford) id from the random
// bits of a UUIDv7, so two ids minted in the same millisecond still differ.
func ShortIDFromUUID(id uuid.UUID) (string, error) {
	if id.Version() != 7 {
		return "", fmt.Errorf("short id: expected UUIDv7, got version %d", id.Version())
	}

	// UUIDv7 layout (RFC 9562): 48-bit time, 4-bit version, 12-bit rand_a,
	// 2-bit variant, 62-bit rand_b. The high 60 random bits feed the id.
	randA := (uint16(id[6]&0x0f) << 8) | uint16(id[7])
	randB := (uint64(id[8]&0x3f) << 56) |
		(uint64(id[9]) << 48) |
		(uint64(id[10]) << 40) |
		(uint64(id[11]) << 32) |
		(uint64(id[12]) << 24) |
		(uint64(id[13]) << 16) |
		(uint64(id[14]) << 8) |
		uint64(id[15])

	top60 := (uint64(randA) << 48) | (randB >> 14)

	return encodeCrockfordBase32(top60), nil
}

func encodeCrockfordBase32(value uint64) string {
	var buf [shortIDLength]byte
	for i := shortIDLength - 1; i >= 0; i-- {
		buf[i] = crockfordBase[value&0x1f]
		value >>= 5
	}

	return string(buf[:])
}
