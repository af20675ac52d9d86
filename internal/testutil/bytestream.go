package testutil

// ByteStream hands out deterministic values derived from fuzz input.
//
// Once the input is used up every read returns a zero value, so the same
// bytes always produce the same sequence.
type ByteStream struct {
	bytes []byte
	pos   int
}

// nameAlphabet has 64 entries so a byte maps onto it evenly. The two spaces
// give names whitespace often enough to matter.
const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789  "

// NewByteStream creates a stream over the given bytes.
func NewByteStream(b []byte) *ByteStream {
	return &ByteStream{bytes: b}
}

// HasMore reports whether unread bytes remain.
func (s *ByteStream) HasMore() bool {
	return s.pos < len(s.bytes)
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteStream) NextByte() byte {
	if !s.HasMore() {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// NextInt returns a value in [0, maxVal) taken from the next byte.
func (s *ByteStream) NextInt(maxVal int) int {
	if maxVal <= 0 {
		return 0
	}

	return int(s.NextByte()) % maxVal
}

// NextBool returns a boolean taken from the next byte.
func (s *ByteStream) NextBool() bool {
	return s.NextByte()&1 == 1
}

// NextString returns 1 to maxLen lowercase letters.
func (s *ByteStream) NextString(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	out := make([]byte, 1+s.NextInt(maxLen))
	for i := range out {
		out[i] = 'a' + s.NextByte()%26
	}

	return string(out)
}

// NextName returns up to maxLen characters of letters, digits and spaces.
// Spaces may lead or trail, and the name may be blank or empty.
func (s *ByteStream) NextName(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	out := make([]byte, s.NextInt(maxLen+1))
	for i := range out {
		out[i] = nameAlphabet[s.NextByte()%byte(len(nameAlphabet))]
	}

	return string(out)
}
