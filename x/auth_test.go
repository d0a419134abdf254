package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/phtlctest"
	"github.com/iov-one/phtlc/x"
	"github.com/stretchr/testify/assert"
)

func TestChainAuth(t *testing.T) {
	a, b, c := phtlctest.NewCondition(), phtlctest.NewCondition(), phtlctest.NewCondition()

	ctxAuth := &phtlctest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), a)
	static := &phtlctest.Auth{Signer: b}

	auth := x.ChainAuth(ctxAuth, static)

	assert.Equal(t, []phtlc.Condition{a, b}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))

	// The first authenticator provides the main signer.
	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.Equal(t, b, x.MainSigner(ctx, x.ChainAuth(static, ctxAuth)))
	assert.Empty(t, x.ChainAuth().GetConditions(ctx))
}

func TestMainSigner(t *testing.T) {
	auth := &phtlctest.CtxAuth{Key: "auth"}
	ctx := context.Background()
	assert.Nil(t, x.MainSigner(ctx, auth))

	a, b := phtlctest.NewCondition(), phtlctest.NewCondition()
	ctx = auth.SetConditions(ctx, a, b)
	assert.Equal(t, a, x.MainSigner(ctx, auth))
}
