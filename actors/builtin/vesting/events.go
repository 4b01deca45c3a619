package vesting

import (
	addr "github.com/filecoin-project/go-address"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	vmr "github.com/vestforge/vesting-actors/actors/runtime"
)

// Event type labels as they appear to external observers.
const (
	EventTypeVestingCreated = "vesting-created"
	EventTypeTokensClaimed  = "tokens-claimed"
	EventTypeVestingRevoked = "vesting-revoked"
	EventTypeFeePaid        = "fee-paid"
)

// VestingCreatedEvent records a new schedule. NetAmount is post-fee.
type VestingCreatedEvent struct {
	Beneficiary addr.Address
	NetAmount   abi.TokenAmount
	StartTime   abi.Timestamp
}

func (e *VestingCreatedEvent) Type() string { return EventTypeVestingCreated }

// TokensClaimedEvent records a successful claim.
type TokensClaimedEvent struct {
	Beneficiary addr.Address
	Amount      abi.TokenAmount
	Time        abi.Timestamp
}

func (e *TokensClaimedEvent) Type() string { return EventTypeTokensClaimed }

// VestingRevokedEvent records a revocation. Unvested is the remainder
// returned to the treasury, snapshotted at revocation time.
type VestingRevokedEvent struct {
	Beneficiary addr.Address
	Unvested    abi.TokenAmount
	Time        abi.Timestamp
}

func (e *VestingRevokedEvent) Type() string { return EventTypeVestingRevoked }

// FeePaidEvent records the protocol fee retained on schedule creation.
type FeePaidEvent struct {
	Beneficiary addr.Address
	Fee         abi.TokenAmount
}

func (e *FeePaidEvent) Type() string { return EventTypeFeePaid }

var _ vmr.Event = (*VestingCreatedEvent)(nil)
var _ vmr.Event = (*TokensClaimedEvent)(nil)
var _ vmr.Event = (*VestingRevokedEvent)(nil)
var _ vmr.Event = (*FeePaidEvent)(nil)
