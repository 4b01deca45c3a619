package vesting_test

import (
	"context"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	builtin "github.com/vestforge/vesting-actors/actors/builtin"
	"github.com/vestforge/vesting-actors/actors/builtin/vesting"
	adt "github.com/vestforge/vesting-actors/actors/util/adt"
	"github.com/vestforge/vesting-actors/support/ipld"
	tutil "github.com/vestforge/vesting-actors/support/testing"
)

func newStateHarness(t *testing.T, feeBps uint64) (*vesting.State, adt.Store) {
	store := ipld.NewADTStore(context.Background())
	st, err := vesting.ConstructState(store,
		tutil.NewIDAddr(t, 102), // token
		tutil.NewIDAddr(t, 103), // fee collector
		tutil.NewIDAddr(t, 104), // treasury
		tutil.NewIDAddr(t, 101), // admin
		feeBps, abi.Timestamp(1700000000), false)
	require.NoError(t, err)
	return st, store
}

func TestConstructState(t *testing.T) {
	st, store := newStateHarness(t, 250)

	assert.Equal(t, st.StartTime+vesting.CliffDuration, st.CliffEnd)
	assert.Equal(t, st.StartTime+vesting.VestingDuration, st.VestingEnd)
	assert.Equal(t, vesting.ClaimInterval, st.MinClaimInterval)

	_, msgs := vesting.CheckStateInvariants(st, store)
	assert.True(t, msgs.IsEmpty(), strings.Join(msgs.Messages(), "\n"))
}

func TestFeeArithmetic(t *testing.T) {
	st, _ := newStateHarness(t, 250)

	for _, amount := range []int64{100, 101, 999, 1000, 123457, 1_000_000_000} {
		gross := abi.NewTokenAmount(amount)
		fee := st.CalculateFee(gross)
		net := big.Sub(gross, fee)

		// Fee plus net always reconstructs the gross amount exactly.
		assert.True(t, big.Add(fee, net).Equals(gross))
		// Floor division never overcharges.
		assert.True(t, fee.LessThanEqual(big.Div(big.Mul(gross, big.NewInt(250)), big.NewInt(vesting.BasisPoints))))
	}

	assert.True(t, st.CalculateFee(abi.NewTokenAmount(1000)).Equals(abi.NewTokenAmount(25)))
	assert.True(t, st.CalculateFee(abi.NewTokenAmount(999)).Equals(abi.NewTokenAmount(24)))
	smallFee := st.CalculateFee(abi.NewTokenAmount(39))
	assert.True(t, smallFee.IsZero())
}

func TestVestedAmount(t *testing.T) {
	st, _ := newStateHarness(t, 0)
	schedule := &vesting.VestingSchedule{
		TotalAmount:    abi.NewTokenAmount(1000),
		ReleasedAmount: big.Zero(),
		StartTime:      st.StartTime,
	}

	t.Run("step function at the boundaries", func(t *testing.T) {
		atStart := st.VestedAmount(schedule, st.StartTime)
		assert.True(t, atStart.IsZero())
		beforeCliff := st.VestedAmount(schedule, st.StartTime+89*builtin.SecondsInDay)
		assert.True(t, beforeCliff.IsZero())
		justBeforeCliff := st.VestedAmount(schedule, st.CliffEnd-1)
		assert.True(t, justBeforeCliff.IsZero())
		assert.True(t, st.VestedAmount(schedule, st.CliffEnd).Equals(abi.NewTokenAmount(100)))
		assert.True(t, st.VestedAmount(schedule, st.VestingEnd).Equals(abi.NewTokenAmount(1000)))
		assert.True(t, st.VestedAmount(schedule, st.VestingEnd+builtin.SecondsInYear).Equals(abi.NewTokenAmount(1000)))
	})

	t.Run("monotonically non-decreasing and bounded", func(t *testing.T) {
		prev := big.Zero()
		for now := st.StartTime; now <= st.VestingEnd+builtin.SecondsInDay; now += builtin.SecondsInDay {
			vested := st.VestedAmount(schedule, now)
			assert.True(t, vested.GreaterThanEqual(prev), "vested decreased at %v: %v < %v", now, vested, prev)
			assert.True(t, vested.LessThanEqual(schedule.TotalAmount))
			prev = vested
		}
		assert.True(t, prev.Equals(schedule.TotalAmount))
	})

	t.Run("zero once revoked", func(t *testing.T) {
		revoked := *schedule
		revoked.Revoked = true
		vested := st.VestedAmount(&revoked, st.VestingEnd)
		assert.True(t, vested.IsZero())
	})
}

func TestScheduleStorage(t *testing.T) {
	st, store := newStateHarness(t, 0)
	alice := tutil.NewIDAddr(t, 105)
	bob := tutil.NewIDAddr(t, 106)

	_, found, err := st.GetSchedule(store, alice)
	require.NoError(t, err)
	assert.False(t, found)

	schedule := &vesting.VestingSchedule{
		TotalAmount:    abi.NewTokenAmount(975),
		ReleasedAmount: big.Zero(),
		StartTime:      st.StartTime,
	}
	require.NoError(t, st.PutSchedule(store, alice, schedule))
	require.NoError(t, st.AppendBeneficiary(store, alice))
	st.TotalVested = big.Add(st.TotalVested, schedule.TotalAmount)
	st.BeneficiaryCount++

	loaded, found, err := st.GetSchedule(store, alice)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, schedule, loaded)

	other := &vesting.VestingSchedule{
		TotalAmount:    abi.NewTokenAmount(500),
		ReleasedAmount: big.Zero(),
		StartTime:      st.StartTime,
	}
	require.NoError(t, st.PutSchedule(store, bob, other))
	require.NoError(t, st.AppendBeneficiary(store, bob))
	st.TotalVested = big.Add(st.TotalVested, other.TotalAmount)
	st.BeneficiaryCount++

	listed, err := st.ListBeneficiaries(store)
	require.NoError(t, err)
	assert.Equal(t, []addr.Address{alice, bob}, listed)

	_, msgs := vesting.CheckStateInvariants(st, store)
	assert.True(t, msgs.IsEmpty(), strings.Join(msgs.Messages(), "\n"))
}
