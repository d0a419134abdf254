package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/gconf"
)

// Configuration of the cash extension.
type Configuration struct {
	// Owner is allowed to update the configuration. Optional, when not
	// set the configuration is immutable.
	Owner phtlc.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	// NativeTicker is the only ticker moved by the Controller.
	NativeTicker string `protobuf:"bytes,3,opt,name=native_ticker,proto3" json:"native_ticker"`
}

func (c *Configuration) Reset()         { *c = Configuration{} }
func (c *Configuration) String() string { return proto.CompactTextString(c) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	// owner field is optional
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if !coin.IsCC(c.NativeTicker) {
		return errors.Wrapf(errors.ErrType, "invalid native ticker %q", c.NativeTicker)
	}
	return nil
}

// GetOwner returns the address allowed to change the configuration.
func (c *Configuration) GetOwner() phtlc.Address {
	return c.Owner
}

// NativeTicker returns the ticker of the native coin or an empty string if
// the extension was never configured.
func NativeTicker(db gconf.ReadStore) (string, error) {
	var conf Configuration
	switch err := gconf.Load(db, "cash", &conf); {
	case err == nil:
		return conf.NativeTicker, nil
	case errors.ErrNotFound.Is(err):
		return "", nil
	default:
		return "", errors.Wrap(err, "load configuration")
	}
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "cash", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
