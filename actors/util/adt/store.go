package adt

import (
	"context"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	hamt "github.com/ipfs/go-hamt-ipld"
	cbor "github.com/ipfs/go-ipld-cbor"

	vmr "github.com/vestforge/vesting-actors/actors/runtime"
)

// Store defines an interface required to back the ADTs in this package.
type Store interface {
	Context() context.Context
	hamt.CborIpldStore
}

// Keyer defines an interface required to put values in a Map.
type Keyer interface {
	Key() string
}

// AsStore allows Runtime to satisfy the adt.Store interface.
func AsStore(rt vmr.Runtime) Store {
	return rtStore{rt}
}

var _ Store = &rtStore{}

type rtStore struct {
	vmr.Runtime
}

func (r rtStore) Context() context.Context {
	return r.Runtime.Context()
}

func (r rtStore) Get(_ context.Context, c cid.Cid, out interface{}) error {
	if !r.Runtime.Store().Get(c, out.(vmr.CBORUnmarshaler)) {
		r.Abortf(exitcode.ErrIllegalState, "object %v not found in store", c)
	}
	return nil
}

func (r rtStore) Put(_ context.Context, v interface{}) (cid.Cid, error) {
	return r.Runtime.Store().Put(v.(vmr.CBORMarshaler)), nil
}

// WrapStore adapts a Go context and an IPLD store to the adt.Store
// interface, for use outside a runtime (tests, inspection tooling).
func WrapStore(ctx context.Context, store cbor.IpldStore) Store {
	return &wstore{
		ctx:       ctx,
		IpldStore: store,
	}
}

type wstore struct {
	ctx context.Context
	cbor.IpldStore
}

var _ Store = &wstore{}

func (s *wstore) Context() context.Context {
	return s.ctx
}

// AddrKey adapts an address as a mapping key.
type AddrKey addr.Address

func (k AddrKey) Key() string {
	return string(addr.Address(k).Bytes())
}
