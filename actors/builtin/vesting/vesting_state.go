package vesting

import (
	addr "github.com/filecoin-project/go-address"
	big "github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	adt "github.com/vestforge/vesting-actors/actors/util/adt"
)

type State struct {
	// Configuration, fixed at construction. Admin is the only identity that
	// may create or revoke schedules and toggle the pause flag; there is no
	// ownership transfer.
	Token            addr.Address
	FeeCollector     addr.Address
	Treasury         addr.Address
	Admin            addr.Address
	FeeBasisPoints   uint64
	StartTime        abi.Timestamp
	CliffEnd         abi.Timestamp
	VestingEnd       abi.Timestamp
	MinClaimInterval abi.Timestamp

	// Mutable ledger state.
	Paused           bool
	TotalVested      abi.TokenAmount // sum of net amounts across all schedules
	BeneficiaryCount uint64
	Schedules        cid.Cid // HAMT[address]VestingSchedule
	Beneficiaries    cid.Cid // AMT of addresses, insertion order
}

// VestingSchedule is the per-beneficiary record. TotalAmount is the net
// grant (post-fee) and never changes; revocation only stops future accrual.
type VestingSchedule struct {
	TotalAmount    abi.TokenAmount
	ReleasedAmount abi.TokenAmount
	StartTime      abi.Timestamp
	LastClaimTime  abi.Timestamp // zero until the first claim
	Revoked        bool
}

func ConstructState(store adt.Store, token, feeCollector, treasury, admin addr.Address,
	feeBasisPoints uint64, startTime abi.Timestamp, testMode bool) (*State, error) {
	emptySchedules, err := adt.MakeEmptyMap(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty schedules map: %w", err)
	}
	emptyBeneficiaries, err := adt.MakeEmptyArray(store)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty beneficiary list: %w", err)
	}

	claimInterval := ClaimInterval
	if testMode {
		claimInterval = TestClaimInterval
	}

	return &State{
		Token:            token,
		FeeCollector:     feeCollector,
		Treasury:         treasury,
		Admin:            admin,
		FeeBasisPoints:   feeBasisPoints,
		StartTime:        startTime,
		CliffEnd:         startTime + CliffDuration,
		VestingEnd:       startTime + VestingDuration,
		MinClaimInterval: claimInterval,

		Paused:           false,
		TotalVested:      big.Zero(),
		BeneficiaryCount: 0,
		Schedules:        emptySchedules.Root(),
		Beneficiaries:    emptyBeneficiaries.Root(),
	}, nil
}

// CalculateFee computes the protocol fee on a gross amount: floor division
// against the basis-point denominator.
func (st *State) CalculateFee(amount abi.TokenAmount) abi.TokenAmount {
	return big.Div(big.Mul(amount, big.NewInt(int64(st.FeeBasisPoints))), big.NewInt(BasisPoints))
}

// VestedAmount computes the amount vested for a schedule at the given time:
// zero before the cliff ends or after revocation, the full amount at the
// vesting end, and otherwise an initial release at the cliff followed by
// linear growth over [CliffEnd, VestingEnd].
func (st *State) VestedAmount(s *VestingSchedule, now abi.Timestamp) abi.TokenAmount {
	if s.Revoked {
		return big.Zero()
	}
	if now < st.CliffEnd {
		return big.Zero()
	}
	if now >= st.VestingEnd {
		return s.TotalAmount
	}

	initial := big.Div(big.Mul(s.TotalAmount, big.NewInt(InitialReleaseBps)), big.NewInt(BasisPoints))
	elapsed := big.NewInt(int64(now - st.CliffEnd))
	window := big.NewInt(int64(st.VestingEnd - st.CliffEnd))
	// Division must be done last to avoid precision loss with integer values.
	linear := big.Div(big.Mul(big.Sub(s.TotalAmount, initial), elapsed), window)
	return big.Add(initial, linear)
}

// InCliffPeriod reports whether the clock reading falls inside [StartTime,
// CliffEnd).
func (st *State) InCliffPeriod(now abi.Timestamp) bool {
	return now >= st.StartTime && now < st.CliffEnd
}

// GetSchedule loads the schedule for a beneficiary, returning whether one
// exists.
func (st *State) GetSchedule(store adt.Store, beneficiary addr.Address) (*VestingSchedule, bool, error) {
	schedules := adt.AsMap(store, st.Schedules)
	var out VestingSchedule
	found, err := schedules.Get(adt.AddrKey(beneficiary), &out)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load schedule for %v: %w", beneficiary, err)
	}
	if !found {
		return nil, false, nil
	}
	return &out, true, nil
}

// PutSchedule stores the schedule for a beneficiary and updates the map root.
func (st *State) PutSchedule(store adt.Store, beneficiary addr.Address, s *VestingSchedule) error {
	schedules := adt.AsMap(store, st.Schedules)
	if err := schedules.Put(adt.AddrKey(beneficiary), s); err != nil {
		return xerrors.Errorf("failed to put schedule for %v: %w", beneficiary, err)
	}
	st.Schedules = schedules.Root()
	return nil
}

// AppendBeneficiary records a beneficiary at the end of the insertion-order
// list and updates the array root.
func (st *State) AppendBeneficiary(store adt.Store, beneficiary addr.Address) error {
	list := adt.AsArray(store, st.Beneficiaries)
	if err := list.Append(&beneficiary); err != nil {
		return xerrors.Errorf("failed to append beneficiary %v: %w", beneficiary, err)
	}
	st.Beneficiaries = list.Root()
	return nil
}

// ListBeneficiaries returns all beneficiaries in insertion order.
func (st *State) ListBeneficiaries(store adt.Store) ([]addr.Address, error) {
	list := adt.AsArray(store, st.Beneficiaries)
	out := make([]addr.Address, 0, st.BeneficiaryCount)
	var a addr.Address
	err := list.ForEach(&a, func(i int64) error {
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to iterate beneficiary list: %w", err)
	}
	return out, nil
}
