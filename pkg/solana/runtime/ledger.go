package runtime

import (
	"crypto/ed25519"
	"sync"
	"time"
)

// Rent parameters of the default genesis config.
//
// Reference: https://github.com/solana-labs/solana/blob/d7b9aca87b0327266cde4f0116113a4203642130/sdk/program/src/rent.rs
const (
	accountStorageOverhead = 128
	lamportsPerByteYear    = 3480
	exemptionThresholdYrs  = 2
)

// Ledger is an in-memory host environment. It implements the Rent, Clock and
// System collaborators with the semantics a program observes on a real
// cluster, and is used to execute programs locally in tests.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*AccountInfo
	now      time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[string]*AccountInfo),
		now:      time.Now(),
	}
}

// CreateFundedAccount registers a system-owned account holding the provided
// balance, i.e. a wallet.
func (l *Ledger) CreateFundedAccount(address ed25519.PublicKey, lamports uint64) *AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	account := &AccountInfo{
		Address:    address,
		Lamports:   lamports,
		Owner:      make(ed25519.PublicKey, ed25519.PublicKeySize),
		IsWritable: true,
	}
	l.accounts[string(address)] = account
	return account
}

// Account returns the registered account at the address, or nil.
func (l *Ledger) Account(address ed25519.PublicKey) *AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.accounts[string(address)]
}

func (l *Ledger) SetNow(t time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.now = t
}

func (l *Ledger) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.now
}

func (l *Ledger) MinimumBalance(dataSize uint64) uint64 {
	return (accountStorageOverhead + dataSize) * lamportsPerByteYear * exemptionThresholdYrs
}

func (l *Ledger) Transfer(from, to *AccountInfo, lamports uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !from.IsSigner {
		return ErrMissingRequiredSignature
	}
	if !from.IsWritable || !to.IsWritable {
		return ErrReadonlyAccount
	}
	if from.Lamports < lamports {
		return ErrInsufficientFunds
	}

	from.Lamports -= lamports
	to.Lamports += lamports
	return nil
}

func (l *Ledger) CreateAccount(funder, account *AccountInfo, owner ed25519.PublicKey, lamports, size uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !funder.IsSigner {
		return ErrMissingRequiredSignature
	}
	if inUse(account) || inUse(l.accounts[string(account.Address)]) {
		return ErrAccountAlreadyInUse
	}
	if funder.Lamports < lamports {
		return ErrInsufficientFunds
	}

	funder.Lamports -= lamports
	account.Lamports += lamports
	account.Data = make([]byte, size)
	account.Owner = owner

	l.accounts[string(account.Address)] = account
	return nil
}

func inUse(account *AccountInfo) bool {
	if account == nil {
		return false
	}
	return account.Lamports > 0 || len(account.Data) > 0 || isAssigned(account.Owner)
}

func isAssigned(owner ed25519.PublicKey) bool {
	for _, b := range owner {
		if b != 0 {
			return true
		}
	}
	return false
}
