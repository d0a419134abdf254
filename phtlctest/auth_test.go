package phtlctest

import (
	"context"
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/stretchr/testify/assert"
)

func TestCtxAuth(t *testing.T) {
	a := &CtxAuth{Key: "auth"}
	first, second := NewCondition(), NewCondition()

	ctx := context.Background()
	assert.Empty(t, a.GetConditions(ctx))
	assert.False(t, a.HasAddress(ctx, first.Address()))

	ctx = a.SetConditions(ctx, first, second)
	assert.Equal(t, []phtlc.Condition{first, second}, a.GetConditions(ctx))
	assert.True(t, a.HasAddress(ctx, second.Address()))
	assert.False(t, a.HasAddress(ctx, NewCondition().Address()))

	// a different key does not see the conditions
	other := &CtxAuth{Key: "other"}
	assert.Empty(t, other.GetConditions(ctx))
}

func TestAuth(t *testing.T) {
	main, extra := NewCondition(), NewCondition()
	a := &Auth{Signer: main, Signers: []phtlc.Condition{extra}}

	ctx := context.Background()
	assert.Equal(t, main, a.GetConditions(ctx)[0])
	assert.True(t, a.HasAddress(ctx, main.Address()))
	assert.True(t, a.HasAddress(ctx, extra.Address()))
	assert.False(t, a.HasAddress(ctx, NewCondition().Address()))
}
