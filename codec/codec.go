/*
Package codec serializes models, messages and transactions.

Every persisted or transmitted type is a gogo protobuf message: its fields
carry protobuf struct tags and it implements proto.Message. The encoding is
the proto3 wire format, so any protobuf client can read the stored state.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/phtlc/errors"
)

// Marshal returns the wire representation of given message.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads the wire representation into given message. The message
// is reset first.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal %T: %s", m, err)
	}
	return nil
}
