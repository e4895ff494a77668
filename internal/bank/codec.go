package bank

import "github.com/aretw0/memimg/pkg/codec/jsonline"

// NewCodec returns the JSON line codec covering every bank command.
// Wire names are part of the log format; they must never change once a
// log exists.
func NewCodec() *jsonline.Codec[Command] {
	return jsonline.New[Command]().
		Register("create_account", func() Command { return &CreateAccount{} }).
		Register("deposit", func() Command { return &Deposit{} }).
		Register("withdraw", func() Command { return &Withdraw{} }).
		Register("transfer", func() Command { return &Transfer{} })
}
