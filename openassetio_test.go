package openassetio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityReference_RoundTripsString(t *testing.T) {
	t.Parallel()
	ref := NewEntityReference("asset://my_asset")
	assert.Equal(t, "asset://my_asset", ref.String())
}

func TestEntityReference_Equals(t *testing.T) {
	t.Parallel()
	a := NewEntityReference("asset://a")
	b := NewEntityReference("asset://a")
	c := NewEntityReference("asset://c")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, a, b)
}

func TestNewContext(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	require.NotNil(t, ctx.Locale)
	assert.True(t, ctx.Locale.TraitSet().IsEmpty())
	assert.False(t, ctx.HasManagerState())
}

type stubState struct {
	ManagerStateBase
}

func TestContext_HasManagerState(t *testing.T) {
	t.Parallel()
	ctx := NewContext()
	ctx.ManagerState = &stubState{}
	assert.True(t, ctx.HasManagerState())
}
