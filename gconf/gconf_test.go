package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc"
	"github.com/iov-one/phtlc/errors"
	"github.com/iov-one/phtlc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// myconfig is a configuration used only in tests.
type myconfig struct {
	Owner phtlc.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Num   int64         `protobuf:"varint,2,opt,name=num,proto3" json:"num"`
	Str   string        `protobuf:"bytes,3,opt,name=str,proto3" json:"str"`
}

func (c *myconfig) Reset()         { *c = myconfig{} }
func (c *myconfig) String() string { return proto.CompactTextString(c) }
func (*myconfig) ProtoMessage()    {}

func (c *myconfig) GetOwner() phtlc.Address { return c.Owner }

func (c *myconfig) Validate() error {
	if c.Num < 0 {
		return errors.Wrap(errors.ErrState, "negative num")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got myconfig
	err := Load(db, "mypkg", &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "mypkg", &myconfig{Num: -1})
	assert.True(t, errors.ErrState.Is(err))

	want := myconfig{Num: 3, Str: "three"}
	require.NoError(t, Save(db, "mypkg", &want))
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, want, got)
}

func TestInitConfig(t *testing.T) {
	var opts phtlc.Options
	require.NoError(t, json.Unmarshal([]byte(`{
		"conf": {
			"mypkg": {"num": 7, "str": "seven"}
		}
	}`), &opts))

	db := store.MemStore()
	require.NoError(t, InitConfig(db, opts, "mypkg", &myconfig{}))

	var got myconfig
	require.NoError(t, Load(db, "mypkg", &got))
	assert.Equal(t, int64(7), got.Num)
	assert.Equal(t, "seven", got.Str)

	err := InitConfig(db, opts, "otherpkg", &myconfig{})
	assert.True(t, errors.ErrNotFound.Is(err))
}
