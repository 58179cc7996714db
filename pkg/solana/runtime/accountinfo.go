package runtime

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// AccountInfo is the per-invocation view of a ledger account handed to a
// program. The host serializes invocations that touch overlapping accounts,
// so a program has exclusive access to every account it was given for the
// duration of a single call.
type AccountInfo struct {
	Address  ed25519.PublicKey
	Lamports uint64
	Data     []byte
	Owner    ed25519.PublicKey

	IsSigner   bool
	IsWritable bool
}

func (a *AccountInfo) String() string {
	return fmt.Sprintf(
		"AccountInfo{address=%s,lamports=%d,data_len=%d,owner=%s,is_signer=%t,is_writable=%t}",
		base58.Encode(a.Address),
		a.Lamports,
		len(a.Data),
		base58.Encode(a.Owner),
		a.IsSigner,
		a.IsWritable,
	)
}
