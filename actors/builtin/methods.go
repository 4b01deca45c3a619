package builtin

import (
	abi "github.com/vestforge/vesting-actors/actors/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

type vestingMethods struct {
	Constructor     abi.MethodNum
	CreateVesting   abi.MethodNum
	ClaimTokens     abi.MethodNum
	RevokeVesting   abi.MethodNum
	TogglePause     abi.MethodNum
	GetVestedAmount abi.MethodNum
	IsInCliffPeriod abi.MethodNum
	CalculateFee    abi.MethodNum
}

var MethodsVesting = vestingMethods{MethodConstructor, 2, 3, 4, 5, 6, 7, 8}

type tokenMethods struct {
	Constructor abi.MethodNum
	Transfer    abi.MethodNum
}

// The token actor itself is not implemented here; the vesting ledger only
// needs its transfer entry point and parameter shape.
var MethodsToken = tokenMethods{MethodConstructor, 2}
