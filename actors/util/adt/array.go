package adt

import (
	"bytes"

	amt "github.com/filecoin-project/go-amt-ipld/v2"
	cid "github.com/ipfs/go-cid"
	errors "github.com/pkg/errors"
	cbg "github.com/whyrusleeping/cbor-gen"

	vmr "github.com/vestforge/vesting-actors/actors/runtime"
)

// Array stores a contiguous sequence of values in an AMT.
type Array struct {
	root  cid.Cid
	store Store
}

// AsArray interprets a store as an AMT-based array with root `r`.
func AsArray(s Store, r cid.Cid) *Array {
	return &Array{
		root:  r,
		store: s,
	}
}

// MakeEmptyArray creates a new array backed by an empty AMT and flushes it
// to the store.
func MakeEmptyArray(s Store) (*Array, error) {
	root := amt.NewAMT(s)
	newArray := AsArray(s, cid.Undef)
	err := newArray.write(root)
	return newArray, err
}

// Root returns the root CID of the underlying AMT.
func (a *Array) Root() cid.Cid {
	return a.root
}

// Append appends a value to the end of the array.
func (a *Array) Append(value vmr.CBORMarshaler) error {
	root, err := amt.LoadAMT(a.store.Context(), a.store, a.root)
	if err != nil {
		return errors.Wrapf(err, "array append failed to load root %v", a.root)
	}
	if err := root.Set(a.store.Context(), root.Count, value); err != nil {
		return errors.Wrapf(err, "array append failed to set index %v in root %v", root.Count, a.root)
	}
	return a.write(root)
}

// Length returns the number of values in the array.
func (a *Array) Length() (uint64, error) {
	root, err := amt.LoadAMT(a.store.Context(), a.store, a.root)
	if err != nil {
		return 0, errors.Wrapf(err, "array length failed to load root %v", a.root)
	}
	return root.Count, nil
}

// ForEach iterates all entries in the array in index order, deserializing
// each value in turn into `out` and then calling a function.
// Iteration halts if the function returns an error.
// If the output parameter is nil, deserialization is skipped.
func (a *Array) ForEach(out vmr.CBORUnmarshaler, fn func(i int64) error) error {
	root, err := amt.LoadAMT(a.store.Context(), a.store, a.root)
	if err != nil {
		return errors.Wrapf(err, "array foreach failed to load root %v", a.root)
	}
	return root.ForEach(a.store.Context(), func(k uint64, val *cbg.Deferred) error {
		if out != nil {
			err = out.UnmarshalCBOR(bytes.NewReader(val.Raw))
			if err != nil {
				return err
			}
		}
		return fn(int64(k))
	})
}

// Writes the root node to storage and sets the new root CID.
func (a *Array) write(root *amt.Root) error {
	// Flush does the store put too, differing from the HAMT.
	newCid, err := root.Flush(a.store.Context())
	if err != nil {
		return errors.Wrapf(err, "failed to write AMT root %v", root)
	}
	a.root = newCid
	return nil
}
