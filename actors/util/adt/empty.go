package adt

import (
	"fmt"
	"io"

	runtime "github.com/vestforge/vesting-actors/actors/runtime"
)

// EmptyValue is the zero-field parameter and return type.
type EmptyValue struct{}

var _ runtime.CBORMarshaler = (*EmptyValue)(nil)
var _ runtime.CBORUnmarshaler = (*EmptyValue)(nil)

// Empty is a convenient instance to pass where no parameters are needed.
var Empty = &EmptyValue{}

// 0x80 is an empty list (major type 4 with zero length).
// This is encoded as empty-list since everything here is tuple-encoded.
const emptyListEncoded = 0x80

func (EmptyValue) MarshalCBOR(w io.Writer) error {
	_, err := w.Write([]byte{emptyListEncoded})
	return err
}

func (EmptyValue) UnmarshalCBOR(r io.Reader) error {
	buf := make([]byte, 1)
	_, err := r.Read(buf)
	if err != nil {
		return err
	}
	if buf[0] != emptyListEncoded {
		return fmt.Errorf("invalid empty value %x", buf[0])
	}
	return nil
}
