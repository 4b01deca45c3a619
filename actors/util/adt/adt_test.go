package adt_test

import (
	"context"
	"testing"

	big "github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	adt "github.com/vestforge/vesting-actors/actors/util/adt"
	"github.com/vestforge/vesting-actors/support/ipld"
	tutil "github.com/vestforge/vesting-actors/support/testing"
)

func TestMapOperations(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	m, err := adt.MakeEmptyMap(store)
	require.NoError(t, err)

	// Keys for every signable address protocol round-trip through the HAMT.
	secp := tutil.NewSECP256K1Addr(t, "a pubkey")
	bls := tutil.NewBLSAddr(t, 1)

	v1 := abi.NewTokenAmount(100)
	v2 := abi.NewTokenAmount(200)
	require.NoError(t, m.Put(adt.AddrKey(secp), &v1))
	require.NoError(t, m.Put(adt.AddrKey(bls), &v2))

	var out abi.TokenAmount
	found, err := m.Get(adt.AddrKey(secp), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, out.Equals(v1))

	keys, err := m.CollectKeys()
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, adt.AddrKey(secp).Key())
	assert.Contains(t, keys, adt.AddrKey(bls).Key())

	require.NoError(t, m.Delete(adt.AddrKey(secp)))
	found, err = m.Get(adt.AddrKey(secp), &out)
	require.NoError(t, err)
	assert.False(t, found)

	keys, err = m.CollectKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{adt.AddrKey(bls).Key()}, keys)

	// The surviving entry is still reachable from the updated root.
	reloaded := adt.AsMap(store, m.Root())
	found, err = reloaded.Get(adt.AddrKey(bls), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, out.Equals(v2))
}

func TestArrayOperations(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	arr, err := adt.MakeEmptyArray(store)
	require.NoError(t, err)

	for i := int64(1); i <= 3; i++ {
		v := abi.NewTokenAmount(i * 100)
		require.NoError(t, arr.Append(&v))
	}

	length, err := arr.Length()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), length)

	var v abi.TokenAmount
	sum := big.Zero()
	var indices []int64
	require.NoError(t, arr.ForEach(&v, func(i int64) error {
		sum = big.Add(sum, v)
		indices = append(indices, i)
		return nil
	}))
	assert.Equal(t, []int64{0, 1, 2}, indices)
	assert.True(t, sum.Equals(abi.NewTokenAmount(600)))
}
