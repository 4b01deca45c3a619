package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var (
	SystemActorCodeID  cid.Cid
	InitActorCodeID    cid.Cid
	AccountActorCodeID cid.Cid
	TokenActorCodeID   cid.Cid
	VestingActorCodeID cid.Cid

	// Set of actor code types that can represent external signing parties.
	CallerTypesSignable []cid.Cid
)

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	makeBuiltin := func(s string) cid.Cid {
		c, err := builder.Sum([]byte(s))
		if err != nil {
			panic(err)
		}
		return c
	}

	SystemActorCodeID = makeBuiltin("vest/1/system")
	InitActorCodeID = makeBuiltin("vest/1/init")
	AccountActorCodeID = makeBuiltin("vest/1/account")
	TokenActorCodeID = makeBuiltin("vest/1/token")
	VestingActorCodeID = makeBuiltin("vest/1/vesting")

	CallerTypesSignable = []cid.Cid{AccountActorCodeID}
}
