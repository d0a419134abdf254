package x

import (
	"context"

	"github.com/iov-one/phtlc"
)

// Authenticator tells which conditions signed the transaction being
// processed. Handlers receive it in their constructor and never read the
// signatures themselves.
type Authenticator interface {
	// GetConditions returns the conditions of every signer, the main
	// signer first.
	GetConditions(context.Context) []phtlc.Condition
	// HasAddress returns true if any signer resolves to given address.
	HasAddress(context.Context, phtlc.Address) bool
}

// MultiAuth merges the signers of several authenticators. The order of the
// authenticators decides which signer is the main one.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator consulting all given ones in order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx context.Context) []phtlc.Condition {
	var all []phtlc.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx context.Context, addr phtlc.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer or nil if the transaction is not
// signed. Escrows created without a declared sender are funded by it and
// redeem rewards are paid to it.
func MainSigner(ctx context.Context, auth Authenticator) phtlc.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}
