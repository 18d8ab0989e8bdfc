package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(ErrInternal, "failed to save", cause)

	assert.Equal(t, "failed to save: disk full", err.Error())
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "bare", NewError(ErrInvalid, "bare").Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"typed", NewError(ErrConflict, "taken"), ErrConflict},
		{"wrapped typed", fmt.Errorf("context: %w", NewError(ErrNotFound, "missing")), ErrNotFound},
		{"outermost kind wins", WrapError(ErrUnauthorized, "bad token", NewError(ErrInvalid, "inner")), ErrUnauthorized},
		{"bare sentinel", fmt.Errorf("x: %w", ErrForbidden), ErrForbidden},
		{"untyped", errors.New("boom"), ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Email already registered", MessageOf(NewError(ErrConflict, "Email already registered"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("raw"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(NewError(ErrConflict, ""), "fallback"))
}

func TestEnumerations(t *testing.T) {
	for _, s := range []Source{SourceWeb, SourceMobile, SourceEmail, SourceInPerson} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Source("fax").Valid())
	assert.False(t, Source("Web").Valid())

	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
