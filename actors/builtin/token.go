package builtin

import (
	addr "github.com/filecoin-project/go-address"

	abi "github.com/vestforge/vesting-actors/actors/abi"
)

// TransferParams is the parameter shape of the token actor's Transfer
// method. The token actor is an external collaborator: this repo defines
// only the boundary needed to instruct it to move value.
type TransferParams struct {
	To     addr.Address
	Amount abi.TokenAmount
}
