package testutil

import (
	"errors"
	"strings"

	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// ErrorBuckets maps spec error codes to broad shell error substrings.
//
// Matching is loose: when both sides fail, the shell's stderr only has to
// fall into the bucket for the model's code.
var ErrorBuckets = map[spec.ErrCode][]string{
	// A blank id before rename text makes the text the id, so "not found"
	// is an acceptable answer too.
	spec.ErrIDRequired:      {"id is required", "not found"},
	spec.ErrProjectNotFound: {"not found"},
	spec.ErrNameRequired:    {"name is required"},
	spec.ErrFormNotOpen:     {"form is not open"},
	spec.ErrNotEditing:      {"not in edit mode"},
	spec.ErrNoPendingDelete: {"no delete pending"},
	spec.ErrIDReused:        {"could not allocate"},
}

// MatchesErrorBucket checks if stderr contains any substring from the
// bucket associated with the given spec error code.
//
// Returns true if:
//   - the error code has a bucket AND stderr matches any substring, OR
//   - the error code has no bucket (unknown errors are not validated)
func MatchesErrorBucket(specErr *spec.Error, stderr string) bool {
	if specErr == nil {
		return true
	}

	bucket, ok := ErrorBuckets[specErr.Code]
	if !ok {
		return true
	}

	lower := strings.ToLower(stderr)
	for _, substr := range bucket {
		if strings.Contains(lower, strings.ToLower(substr)) {
			return true
		}
	}

	return false
}

// ClassifySpecError extracts the error code from a spec error.
// Returns empty string if err is nil or not a *spec.Error.
func ClassifySpecError(err error) spec.ErrCode {
	if err == nil {
		return ""
	}

	specErr := &spec.Error{}
	if errors.As(err, &specErr) {
		return specErr.Code
	}

	return ""
}
