package errors_test

import (
	"errors"
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.InvalidCastf("cannot cast %s", "Heal").
		WithMeta("resources", false)

	wrapped := dnderr.Wrap(base, "cast failed")

	assert.True(t, dnderr.IsInvalidCast(wrapped))
	assert.Equal(t, false, dnderr.GetMeta(wrapped)["resources"])
	assert.Equal(t, "cast failed: cannot cast Heal", wrapped.Error())
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := dnderr.Wrap(errors.New("boom"), "load")

	assert.Equal(t, dnderr.CodeUnknown, dnderr.GetCode(wrapped))
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
}

func TestIs_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", dnderr.NotFoundf("spell %q", "fireball"))

	assert.True(t, dnderr.IsNotFound(err))
	assert.False(t, dnderr.IsValidation(err))
}

func TestWrapWithCode(t *testing.T) {
	err := dnderr.WrapWithCode(errors.New("redis down"), dnderr.CodeInternal, "save")

	assert.Equal(t, dnderr.CodeInternal, dnderr.GetCode(err))
	assert.ErrorContains(t, err, "redis down")
}

func TestIs_FindsWrappedCause(t *testing.T) {
	err := dnderr.InvalidCastf("cannot cast Heal")
	err.Cause = dnderr.UnmetRequirementf("Spell not known.")

	assert.True(t, dnderr.IsInvalidCast(err))
	assert.True(t, dnderr.IsUnmetRequirement(err))
	assert.False(t, dnderr.IsInsufficientResource(err))
	assert.Equal(t, dnderr.CodeInvalidCast, dnderr.GetCode(err))
}
