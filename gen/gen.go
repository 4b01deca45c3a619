package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	builtin "github.com/vestforge/vesting-actors/actors/builtin"
	vesting "github.com/vestforge/vesting-actors/actors/builtin/vesting"
)

func main() {
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/cbor_gen.go", "builtin",
		// method params
		builtin.TransferParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		// actor state
		vesting.State{},
		vesting.VestingSchedule{},
		// method params
		vesting.ConstructorParams{},
		vesting.CreateVestingParams{},
		// events
		vesting.VestingCreatedEvent{},
		vesting.TokensClaimedEvent{},
		vesting.VestingRevokedEvent{},
		vesting.FeePaidEvent{},
	); err != nil {
		panic(err)
	}
}
