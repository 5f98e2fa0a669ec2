package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"Validation", Validationf("bad %s", "input"), KindValidation},
		{"Authentication", Authenticationf("no session"), KindAuthentication},
		{"Authorization", Authorizationf("not allowed"), KindAuthorization},
		{"NotFound", NotFoundf("missing"), KindNotFound},
		{"Conflict", Conflictf("duplicate"), KindConflict},
		{"New", New(KindConflict, "duplicate"), KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind())
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestValidationf_FormatsMessage(t *testing.T) {
	err := Validationf("user %d is not a member", 7)
	assert.Equal(t, "user 7 is not a member", err.Error())
}

func TestKindOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("loading group: %w", NotFoundf("gift group not found"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("database gone")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, IsKind(errors.New("database gone"), KindValidation))
}
