package htlc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
	"github.com/iov-one/phtlc/x"
)

const (
	// DefaultMinTokenTimelockHorizon is how far in the future, in seconds,
	// the timelock of a token escrow must be.
	DefaultMinTokenTimelockHorizon = 900
)

// Configuration of the htlc extension.
type Configuration struct {
	Owner phtlc.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	// MinTokenTimelockHorizon is the minimal distance in seconds between
	// the block time and the timelock of a token escrow.
	MinTokenTimelockHorizon int64 `protobuf:"varint,2,opt,name=min_token_timelock_horizon,proto3" json:"min_token_timelock_horizon"`
	// MinNativeTimelockHorizon is the same for native coin escrows.
	MinNativeTimelockHorizon int64 `protobuf:"varint,3,opt,name=min_native_timelock_horizon,proto3" json:"min_native_timelock_horizon"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if c.MinTokenTimelockHorizon < 0 {
		return errors.Wrap(errors.ErrState, "negative token timelock horizon")
	}
	if c.MinNativeTimelockHorizon < 0 {
		return errors.Wrap(errors.ErrState, "negative native timelock horizon")
	}
	return nil
}

func (c *Configuration) GetOwner() phtlc.Address {
	return c.Owner
}

// Horizon returns the minimal timelock distance for given asset kind.
func (c *Configuration) Horizon(kind x.AssetKind) int64 {
	if kind == x.TokenAsset {
		return c.MinTokenTimelockHorizon
	}
	return c.MinNativeTimelockHorizon
}

// loadConf returns the stored configuration or the defaults if none was
// stored.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, "htlc", &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{MinTokenTimelockHorizon: DefaultMinTokenTimelockHorizon}, nil
	default:
		return nil, err
	}
}
