package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"not found", NotFound("grant %s", "g1"), KindNotFound},
		{"validation", Validation("bad subject"), KindValidation},
		{"conflict", Conflict("duplicate"), KindConflict},
		{"authorization", Authorization("denied"), KindAuthorization},
		{"internal", Internal(errors.New("db down"), "query failed"), KindInternal},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrapped", fmt.Errorf("outer: %w", Conflict("inner")), KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestConflictWithCarriesExisting(t *testing.T) {
	type grant struct{ Id string }
	existing := grant{Id: "g1"}

	err := ConflictWith(existing, "subject already granted")
	assert.True(t, IsConflict(err))

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, existing, e.Existing)
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause, "resolve failed")
	assert.True(t, errors.Is(err, cause))
}
