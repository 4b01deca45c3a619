package test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	big "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestforge/vesting-actors/actors"
	abi "github.com/vestforge/vesting-actors/actors/abi"
	builtin "github.com/vestforge/vesting-actors/actors/builtin"
	"github.com/vestforge/vesting-actors/actors/builtin/vesting"
	"github.com/vestforge/vesting-actors/support/eventlog"
	"github.com/vestforge/vesting-actors/support/mock"
	tutil "github.com/vestforge/vesting-actors/support/testing"
)

// Exercises a full ledger lifecycle: construction, schedule creation for two
// beneficiaries, claims across the vesting window, one revocation, and the
// resulting event trail persisted and replayed from the log.
func TestVestingLifecycle(t *testing.T) {
	actor := vesting.Actor{}
	receiver := tutil.NewIDAddr(t, 100)
	admin := tutil.NewIDAddr(t, 101)
	token := tutil.NewIDAddr(t, 102)
	feeCollector := tutil.NewIDAddr(t, 103)
	treasury := tutil.NewIDAddr(t, 104)
	alice := tutil.NewIDAddr(t, 105)
	bob := tutil.NewIDAddr(t, 106)

	startTime := abi.Timestamp(1700000000)
	cliffEnd := startTime + vesting.CliffDuration
	vestingEnd := startTime + vesting.VestingDuration

	rt := mock.NewBuilder(context.Background(), receiver).
		WithCaller(builtin.InitActorAddr, builtin.InitActorCodeID).
		WithTime(startTime).
		Build(t)

	// Construct with a 2.5% protocol fee.
	rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
	rt.Call(actor.Constructor, &vesting.ConstructorParams{
		Token:          token,
		FeeCollector:   feeCollector,
		Treasury:       treasury,
		Admin:          admin,
		StartTime:      startTime,
		FeeBasisPoints: 250,
	})
	rt.Verify()

	// Two schedules: 1000 gross for alice (975 net), 10000 gross for bob
	// (9750 net).
	rt.SetCaller(admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(admin)
	rt.ExpectEmittedEvent(&vesting.VestingCreatedEvent{Beneficiary: alice, NetAmount: abi.NewTokenAmount(975), StartTime: startTime})
	rt.ExpectEmittedEvent(&vesting.FeePaidEvent{Beneficiary: alice, Fee: abi.NewTokenAmount(25)})
	rt.Call(actor.CreateVesting, &vesting.CreateVestingParams{Beneficiary: alice, Amount: abi.NewTokenAmount(1000)})
	rt.Verify()

	rt.ExpectValidateCallerAddr(admin)
	rt.ExpectEmittedEvent(&vesting.VestingCreatedEvent{Beneficiary: bob, NetAmount: abi.NewTokenAmount(9750), StartTime: startTime})
	rt.ExpectEmittedEvent(&vesting.FeePaidEvent{Beneficiary: bob, Fee: abi.NewTokenAmount(250)})
	rt.Call(actor.CreateVesting, &vesting.CreateVestingParams{Beneficiary: bob, Amount: abi.NewTokenAmount(10000)})
	rt.Verify()

	// Alice claims her initial release at the cliff: 10% of 975 = 97.
	rt.SetTime(cliffEnd)
	rt.SetCaller(alice, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectEmittedEvent(&vesting.TokensClaimedEvent{Beneficiary: alice, Amount: abi.NewTokenAmount(97), Time: cliffEnd})
	rt.ExpectSend(token, builtin.MethodsToken.Transfer,
		&builtin.TransferParams{To: alice, Amount: abi.NewTokenAmount(97)}, big.Zero(), nil, exitcode.Ok)
	rt.Call(actor.ClaimTokens, nil)
	rt.Verify()

	// Bob is revoked at the cliff; 90% of his grant returns to the treasury.
	rt.SetCaller(admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(admin)
	rt.ExpectEmittedEvent(&vesting.VestingRevokedEvent{Beneficiary: bob, Unvested: abi.NewTokenAmount(8775), Time: cliffEnd})
	rt.ExpectSend(token, builtin.MethodsToken.Transfer,
		&builtin.TransferParams{To: treasury, Amount: abi.NewTokenAmount(8775)}, big.Zero(), nil, exitcode.Ok)
	rt.Call(actor.RevokeVesting, &bob)
	rt.Verify()

	// Alice claims the remainder when the window closes.
	rt.SetTime(vestingEnd)
	rt.SetCaller(alice, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectEmittedEvent(&vesting.TokensClaimedEvent{Beneficiary: alice, Amount: abi.NewTokenAmount(878), Time: vestingEnd})
	rt.ExpectSend(token, builtin.MethodsToken.Transfer,
		&builtin.TransferParams{To: alice, Amount: abi.NewTokenAmount(878)}, big.Zero(), nil, exitcode.Ok)
	rt.Call(actor.ClaimTokens, nil)
	rt.Verify()

	// Ledger invariants hold at the end of the run.
	var st vesting.State
	rt.GetState(&st)
	summary, msgs := vesting.CheckStateInvariants(&st, rt.AdtStore())
	require.True(t, msgs.IsEmpty(), strings.Join(msgs.Messages(), "\n"))
	assert.Equal(t, uint64(2), summary.ScheduleCount)
	assert.Equal(t, uint64(1), summary.RevokedCount)
	assert.True(t, summary.TotalReleased.Equals(abi.NewTokenAmount(975)))

	// Persist the emitted events and replay them in order.
	log, err := eventlog.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer log.Close() // nolint:errcheck

	for _, ev := range rt.Emitted() {
		require.NoError(t, log.Append(rt.GetTime(), ev))
	}

	var trail []string
	require.NoError(t, log.Replay(func(rec eventlog.Record) error {
		trail = append(trail, rec.Type)
		return nil
	}))
	assert.Equal(t, []string{
		vesting.EventTypeVestingCreated,
		vesting.EventTypeFeePaid,
		vesting.EventTypeVestingCreated,
		vesting.EventTypeFeePaid,
		vesting.EventTypeTokensClaimed,
		vesting.EventTypeVestingRevoked,
		vesting.EventTypeTokensClaimed,
	}, trail)

	claims, err := log.CountByType(vesting.EventTypeTokensClaimed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims)
}

// The registry exposes exactly the methods the dispatcher needs.
func TestBuiltinActorRegistry(t *testing.T) {
	registered := actors.BuiltinActors()
	require.Len(t, registered, 1)
	assert.Equal(t, builtin.VestingActorCodeID, registered[0].Code())

	exports := registered[0].Exports()
	require.Greater(t, len(exports), int(builtin.MethodsVesting.CalculateFee))
	assert.Nil(t, exports[0], "method 0 is reserved for value sends")
	for _, m := range []abi.MethodNum{
		builtin.MethodsVesting.Constructor,
		builtin.MethodsVesting.CreateVesting,
		builtin.MethodsVesting.ClaimTokens,
		builtin.MethodsVesting.RevokeVesting,
		builtin.MethodsVesting.TogglePause,
		builtin.MethodsVesting.GetVestedAmount,
		builtin.MethodsVesting.IsInCliffPeriod,
		builtin.MethodsVesting.CalculateFee,
	} {
		assert.NotNil(t, exports[m], "method %d not exported", m)
	}
}
