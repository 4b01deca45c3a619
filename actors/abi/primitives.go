package abi

import (
	"strconv"

	big "github.com/filecoin-project/go-state-types/big"
)

// The abi package contains definitions of the types that cross the runtime
// boundary and are used within actor code.

// Timestamp is a clock reading in whole seconds since the Unix epoch, as
// supplied by the runtime's clock. It is also used for durations measured in
// seconds, mirroring how chain epochs serve as both instants and spans.
type Timestamp int64

func (t Timestamp) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// MethodNum identifies a method in an actor's function table. Method numbers
// are stable identifiers: once assigned, a number is never reused even if the
// method itself is retired.
type MethodNum uint64

func (m MethodNum) String() string {
	return strconv.FormatUint(uint64(m), 10)
}

// TokenAmount is an amount of transferable tokens, accounted in the token's
// smallest indivisible unit.
//
// The big int type is an alias rather than a new type because the latter
// introduces incredible amounts of noise converting to and from types in
// order to manipulate values. We give up some type safety for ergonomics.
type TokenAmount = big.Int

func NewTokenAmount(t int64) TokenAmount {
	return big.NewInt(t)
}

// Invokee is the interface all actor code types satisfy. It is merely a
// method dispatch table; invocation mechanics belong to the runtime.
type Invokee interface {
	Exports() []interface{}
}
