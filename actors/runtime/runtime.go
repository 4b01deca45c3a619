package runtime

import (
	"context"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"

	abi "github.com/vestforge/vesting-actors/actors/abi"
)

// Runtime is the environment an actor executes in: everything accessible to
// actor code beyond its own parameters. Implementations guarantee that each
// method invocation is atomic; an abort discards all state changes and
// emitted events of the failing invocation.
type Runtime interface {
	// Information about the message being executed.
	Message() Message

	// The current reading of the ledger clock, in whole seconds. The clock is
	// monotonically non-decreasing across invocations and not controllable by
	// any caller.
	CurrTime() abi.Timestamp

	// Validates the caller against some predicate.
	// Exported actor methods must invoke exactly one caller validation.
	ValidateImmediateCallerAcceptAny()
	ValidateImmediateCallerIs(addrs ...addr.Address)
	ValidateImmediateCallerType(types ...cid.Cid)

	// The balance of the receiving actor.
	CurrentBalance() abi.TokenAmount

	// Provides a handle for the actor's state object.
	State() StateHandle

	// Provides the raw object store backing actor state collections.
	Store() Store

	// Sends a message to another actor, returning the exit code and return
	// value envelope. Sends are forbidden inside a state transaction.
	Send(toAddr addr.Address, methodNum abi.MethodNum, params CBORMarshaler, value abi.TokenAmount) (SendReturn, exitcode.ExitCode)

	// Appends an event to the chain's append-only event log for external
	// observers. Fire-and-forget: actor correctness never depends on whether
	// any observer consumes the record.
	EmitEvent(ev Event)

	// Halts execution with an error from which the actor cannot recover. The
	// caller receives the exit code and an empty return value. State changes
	// and events from the current invocation are discarded.
	// This method does not return.
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// A Go context for use by the HAMT/AMT store plumbing. Actor code should
	// not use this directly.
	Context() context.Context
}

// Message carries the invocation context visible to the receiving actor.
type Message interface {
	// The address of the immediate calling actor.
	Caller() addr.Address

	// The address of the actor receiving the message.
	Receiver() addr.Address

	// The value attached to the message, already added to CurrentBalance().
	ValueReceived() abi.TokenAmount
}

// Store defines the storage module exposed to actors.
type Store interface {
	// Retrieves and deserializes an object from the store into `o`. Returns
	// whether the object was found.
	Get(c cid.Cid, o CBORUnmarshaler) bool
	// Serializes and stores an object, returning its CID.
	Put(x CBORMarshaler) cid.Cid
}

// StateHandle provides mutable, exclusive access to actor state.
type StateHandle interface {
	// Create initializes the state object. Only valid in a constructor, and
	// only when the state has not yet been initialized.
	Create(obj CBORMarshaler)

	// Readonly loads a read-only copy of the state into the argument. Any
	// mutation of the copy is not written back.
	Readonly(obj CBORUnmarshaler)

	// Transaction loads a mutable version of the state into `obj`, invokes f
	// to mutate it, and commits the result as the new state. Side effects
	// (sends) are forbidden within f. Returns the value returned by f.
	Transaction(obj CBORer, f func() interface{}) interface{}
}

// Event is a record destined for the event log. Type discriminates records
// for observers consuming the log without decoding payloads.
type Event interface {
	CBORMarshaler
	Type() string
}

// SendReturn abstracts the return envelope of a message send, in particular
// whether it has been serialized to bytes or just passed through.
type SendReturn interface {
	Into(CBORUnmarshaler) error
}

// These interfaces match those from whyrusleeping/cbor-gen, so generated
// code is automatically usable here.
type CBORMarshaler interface {
	MarshalCBOR(w io.Writer) error
}

type CBORUnmarshaler interface {
	UnmarshalCBOR(r io.Reader) error
}

type CBORer interface {
	CBORMarshaler
	CBORUnmarshaler
}

// CBORBytes wraps already-serialized bytes as CBOR-marshalable.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}
