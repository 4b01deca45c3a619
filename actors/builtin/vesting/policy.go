package vesting

import (
	"github.com/filecoin-project/go-state-types/exitcode"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	builtin "github.com/vestforge/vesting-actors/actors/builtin"
)

// BasisPoints is the denominator for fee and release ratios (1 bp = 1/10000).
const BasisPoints = 10000

// MaxFeeBasisPoints caps the protocol fee at 10%.
const MaxFeeBasisPoints = 1000

// InitialReleaseBps is the share of a schedule released in one step when the
// cliff ends.
const InitialReleaseBps = 1000

// CliffDuration is the period after the vesting start during which nothing
// vests.
const CliffDuration = abi.Timestamp(90 * builtin.SecondsInDay)

// VestingDuration is the period after the vesting start at whose end a
// schedule is fully vested.
const VestingDuration = abi.Timestamp(365 * builtin.SecondsInDay)

// ClaimInterval is the minimum time between successive claims by one
// beneficiary.
const ClaimInterval = abi.Timestamp(builtin.SecondsInDay)

// TestClaimInterval replaces ClaimInterval when the ledger is constructed in
// test mode.
const TestClaimInterval = abi.Timestamp(builtin.SecondsInHour)

// MaxBeneficiaries bounds the insertion-ordered beneficiary list.
const MaxBeneficiaries = 100

// Bounds on the gross amount accepted by CreateVesting.
var MinVestingAmount = abi.NewTokenAmount(100)
var MaxVestingAmount = abi.NewTokenAmount(1_000_000_000)

// Actor-specific exit codes.
const (
	ErrPaused = exitcode.FirstActorSpecificExitCode + iota
	ErrAmountOutOfRange
	ErrCapacityExceeded
	ErrAlreadyExists
	ErrScheduleRevoked
	ErrClaimTooSoon
	ErrNothingToClaim
	ErrAlreadyRevoked
)
