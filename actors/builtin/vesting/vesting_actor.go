package vesting

import (
	addr "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cbg "github.com/whyrusleeping/cbor-gen"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	builtin "github.com/vestforge/vesting-actors/actors/builtin"
	vmr "github.com/vestforge/vesting-actors/actors/runtime"
	adt "github.com/vestforge/vesting-actors/actors/util/adt"
)

type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.CreateVesting,
		3:                         a.ClaimTokens,
		4:                         a.RevokeVesting,
		5:                         a.TogglePause,
		6:                         a.GetVestedAmount,
		7:                         a.IsInCliffPeriod,
		8:                         a.CalculateFee,
	}
}

var _ abi.Invokee = Actor{}

type ConstructorParams struct {
	Token          addr.Address
	FeeCollector   addr.Address
	Treasury       addr.Address
	Admin          addr.Address
	StartTime      abi.Timestamp
	FeeBasisPoints uint64
	TestMode       bool
}

func (a Actor) Constructor(rt vmr.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	validateConfiguredAddress(rt, params.Token, "token")
	validateConfiguredAddress(rt, params.FeeCollector, "fee collector")
	validateConfiguredAddress(rt, params.Treasury, "treasury")
	validateConfiguredAddress(rt, params.Admin, "admin")

	if params.FeeBasisPoints > MaxFeeBasisPoints {
		rt.Abortf(exitcode.ErrIllegalArgument, "fee %d exceeds maximum %d basis points", params.FeeBasisPoints, MaxFeeBasisPoints)
	}
	now := rt.CurrTime()
	if params.StartTime < now {
		rt.Abortf(exitcode.ErrIllegalArgument, "start time %v precedes current time %v", params.StartTime, now)
	}

	st, err := ConstructState(adt.AsStore(rt), params.Token, params.FeeCollector, params.Treasury, params.Admin,
		params.FeeBasisPoints, params.StartTime, params.TestMode)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)
	return nil
}

type CreateVestingParams struct {
	Beneficiary addr.Address
	Amount      abi.TokenAmount // gross amount, fee is deducted from it
}

func (a Actor) CreateVesting(rt vmr.Runtime, params *CreateVestingParams) *adt.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)

	if st.Paused {
		rt.Abortf(ErrPaused, "ledger is paused")
	}
	validateConfiguredAddress(rt, params.Beneficiary, "beneficiary")
	if params.Amount.LessThan(MinVestingAmount) || params.Amount.GreaterThan(MaxVestingAmount) {
		rt.Abortf(ErrAmountOutOfRange, "amount %v outside [%v, %v]", params.Amount, MinVestingAmount, MaxVestingAmount)
	}

	fee := st.CalculateFee(params.Amount)
	netAmount := big.Sub(params.Amount, fee)

	var startTime abi.Timestamp
	rt.State().Transaction(&st, func() interface{} {
		if st.BeneficiaryCount >= MaxBeneficiaries {
			rt.Abortf(ErrCapacityExceeded, "beneficiary capacity %d reached", MaxBeneficiaries)
		}

		store := adt.AsStore(rt)
		_, found, err := st.GetSchedule(store, params.Beneficiary)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check schedule for %v", params.Beneficiary)
		if found {
			rt.Abortf(ErrAlreadyExists, "vesting schedule for %v already exists", params.Beneficiary)
		}

		schedule := &VestingSchedule{
			TotalAmount:    netAmount,
			ReleasedAmount: big.Zero(),
			StartTime:      st.StartTime,
			LastClaimTime:  0,
			Revoked:        false,
		}
		err = st.PutSchedule(store, params.Beneficiary, schedule)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store schedule for %v", params.Beneficiary)
		err = st.AppendBeneficiary(store, params.Beneficiary)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record beneficiary %v", params.Beneficiary)

		st.TotalVested = big.Add(st.TotalVested, netAmount)
		st.BeneficiaryCount++
		startTime = st.StartTime
		return nil
	})

	rt.EmitEvent(&VestingCreatedEvent{Beneficiary: params.Beneficiary, NetAmount: netAmount, StartTime: startTime})
	if fee.GreaterThan(big.Zero()) {
		rt.EmitEvent(&FeePaidEvent{Beneficiary: params.Beneficiary, Fee: fee})
	}
	return nil
}

func (a Actor) ClaimTokens(rt vmr.Runtime, _ *adt.EmptyValue) *abi.TokenAmount {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	beneficiary := rt.Message().Caller()
	now := rt.CurrTime()

	var st State
	var claimable abi.TokenAmount
	rt.State().Transaction(&st, func() interface{} {
		if st.Paused {
			rt.Abortf(ErrPaused, "ledger is paused")
		}

		store := adt.AsStore(rt)
		schedule, found, err := st.GetSchedule(store, beneficiary)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule for %v", beneficiary)
		if !found {
			rt.Abortf(exitcode.ErrNotFound, "no vesting schedule for %v", beneficiary)
		}
		if schedule.Revoked {
			rt.Abortf(ErrScheduleRevoked, "vesting for %v has been revoked", beneficiary)
		}
		if now < schedule.LastClaimTime+st.MinClaimInterval {
			rt.Abortf(ErrClaimTooSoon, "next claim for %v allowed at %v", beneficiary, schedule.LastClaimTime+st.MinClaimInterval)
		}

		vested := st.VestedAmount(schedule, now)
		claimable = big.Sub(vested, schedule.ReleasedAmount)
		if claimable.Sign() == 0 {
			rt.Abortf(ErrNothingToClaim, "nothing to claim for %v at %v", beneficiary, now)
		}

		schedule.ReleasedAmount = big.Add(schedule.ReleasedAmount, claimable)
		schedule.LastClaimTime = now
		err = st.PutSchedule(store, beneficiary, schedule)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store schedule for %v", beneficiary)
		return nil
	})

	rt.EmitEvent(&TokensClaimedEvent{Beneficiary: beneficiary, Amount: claimable, Time: now})

	// A failed transfer aborts the invocation, discarding the ledger update
	// and the emitted event.
	_, code := rt.Send(st.Token, builtin.MethodsToken.Transfer,
		&builtin.TransferParams{To: beneficiary, Amount: claimable}, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to transfer %v to %v", claimable, beneficiary)
	return &claimable
}

func (a Actor) RevokeVesting(rt vmr.Runtime, beneficiary *addr.Address) *adt.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)
	now := rt.CurrTime()

	var unvested abi.TokenAmount
	rt.State().Transaction(&st, func() interface{} {
		store := adt.AsStore(rt)
		schedule, found, err := st.GetSchedule(store, *beneficiary)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule for %v", *beneficiary)
		if !found {
			rt.Abortf(exitcode.ErrNotFound, "no vesting schedule for %v", *beneficiary)
		}
		if schedule.Revoked {
			rt.Abortf(ErrAlreadyRevoked, "vesting for %v already revoked", *beneficiary)
		}

		// Snapshot of the unvested remainder; never recomputed after this
		// point. Vested-but-unclaimed value stays with the token holdings,
		// neither paid out nor refunded.
		unvested = big.Sub(schedule.TotalAmount, st.VestedAmount(schedule, now))
		schedule.Revoked = true
		err = st.PutSchedule(store, *beneficiary, schedule)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store schedule for %v", *beneficiary)
		return nil
	})

	rt.EmitEvent(&VestingRevokedEvent{Beneficiary: *beneficiary, Unvested: unvested, Time: now})

	if unvested.GreaterThan(big.Zero()) {
		_, code := rt.Send(st.Token, builtin.MethodsToken.Transfer,
			&builtin.TransferParams{To: st.Treasury, Amount: unvested}, big.Zero())
		builtin.RequireSuccess(rt, code, "failed to return %v to treasury", unvested)
	}
	return nil
}

func (a Actor) TogglePause(rt vmr.Runtime, _ *adt.EmptyValue) *adt.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)

	rt.State().Transaction(&st, func() interface{} {
		st.Paused = !st.Paused
		return nil
	})
	return nil
}

// GetVestedAmount reports the amount vested (claimed or not) for a
// beneficiary at the current time. Zero for unknown or revoked beneficiaries.
func (a Actor) GetVestedAmount(rt vmr.Runtime, beneficiary *addr.Address) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	schedule, found, err := st.GetSchedule(adt.AsStore(rt), *beneficiary)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule for %v", *beneficiary)
	vested := big.Zero()
	if found {
		vested = st.VestedAmount(schedule, rt.CurrTime())
	}
	return &vested
}

func (a Actor) IsInCliffPeriod(rt vmr.Runtime, _ *adt.EmptyValue) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	inCliff := cbg.CborBool(st.InCliffPeriod(rt.CurrTime()))
	return &inCliff
}

// CalculateFee previews the protocol fee that CreateVesting would deduct
// from a gross amount.
func (a Actor) CalculateFee(rt vmr.Runtime, amount *abi.TokenAmount) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	fee := st.CalculateFee(*amount)
	return &fee
}

func validateConfiguredAddress(rt vmr.Runtime, a addr.Address, role string) {
	builtin.RequireParam(rt, a != addr.Undef && a != builtin.BurntFundsActorAddr,
		"%s address must be a usable identity, got %v", role, a)
}
