package builtin

import (
	addr "github.com/filecoin-project/go-address"
)

// Addresses of singleton system actors, allocated in the first few IDs.
var (
	SystemActorAddr = mustMakeAddress(0)
	InitActorAddr   = mustMakeAddress(1)

	// BurntFundsActorAddr is the null sink. Value sent here is destroyed;
	// it is never a valid vesting beneficiary or configuration identity.
	BurntFundsActorAddr = mustMakeAddress(99)
)

func mustMakeAddress(id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	if err != nil {
		panic(err)
	}
	return address
}
