package runtime

import (
	"crypto/ed25519"
	"time"
)

// Rent exposes the ledger's storage pricing.
type Rent interface {
	// MinimumBalance returns the lamports an account holding dataSize bytes
	// must carry to be exempt from rent collection forever.
	MinimumBalance(dataSize uint64) uint64
}

// Clock is the ledger time source.
type Clock interface {
	Now() time.Time
}

// System is the native program a handler invokes for value transfers and
// account provisioning. Each call either completes fully or fails with no
// effect of its own; completed calls are never rolled back by the host when
// a later call in the same handler fails.
type System interface {
	// Transfer moves lamports between two accounts. The source must be a
	// writable signer with a sufficient balance.
	Transfer(from, to *AccountInfo, lamports uint64) error

	// CreateAccount provisions a brand new account with the given owner,
	// funded by the funder with the given lamports and sized to exactly
	// size bytes.
	CreateAccount(funder, account *AccountInfo, owner ed25519.PublicKey, lamports, size uint64) error
}

// Environment bundles the host collaborators available to a program during
// one invocation.
type Environment interface {
	Rent
	Clock
	System
}
