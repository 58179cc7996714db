package solana

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_CompileOrdering(t *testing.T) {
	payerPub, payerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	programPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	writablePub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	readonlyPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	instruction := NewInstruction(
		programPub,
		[]byte{1, 2, 3},
		NewAccountMeta(payerPub, true),
		NewAccountMeta(writablePub, false),
		NewReadonlyAccountMeta(readonlyPub, false),
	)

	tx := NewTransaction(payerPub, instruction)

	// Payer first, writables before read-only, program last.
	require.Len(t, tx.Message.Accounts, 4)
	assert.EqualValues(t, payerPub, tx.Message.Accounts[0])
	assert.EqualValues(t, writablePub, tx.Message.Accounts[1])
	assert.EqualValues(t, readonlyPub, tx.Message.Accounts[2])
	assert.EqualValues(t, programPub, tx.Message.Accounts[3])

	assert.EqualValues(t, 1, tx.Message.Header.NumSignatures)
	assert.EqualValues(t, 0, tx.Message.Header.NumReadonlySigned)
	assert.EqualValues(t, 2, tx.Message.Header.NumReadOnly)

	require.Len(t, tx.Message.Instructions, 1)
	assert.EqualValues(t, 3, tx.Message.Instructions[0].ProgramIndex)
	assert.Equal(t, []byte{0, 1, 2}, tx.Message.Instructions[0].Accounts)
	assert.Equal(t, []byte{1, 2, 3}, tx.Message.Instructions[0].Data)

	require.NoError(t, tx.Sign(payerPriv))
	assert.True(t, ed25519.Verify(payerPub, tx.Message.Marshal(), tx.Signature()))
}

func TestTransaction_MarshalRoundTrip(t *testing.T) {
	payerPub, payerPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	programPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		payerPub,
		NewInstruction(programPub, []byte("hello"), NewAccountMeta(payerPub, true)),
	)

	var bh Blockhash
	for i := range bh {
		bh[i] = byte(i)
	}
	tx.SetBlockhash(bh)
	require.NoError(t, tx.Sign(payerPriv))

	var decoded Transaction
	require.NoError(t, decoded.Unmarshal(tx.Marshal()))
	assert.Equal(t, tx.Signatures, decoded.Signatures)
	assert.Equal(t, tx.Message.Header, decoded.Message.Header)
	assert.Equal(t, tx.Message.Accounts, decoded.Message.Accounts)
	assert.Equal(t, tx.Message.RecentBlockhash, decoded.Message.RecentBlockhash)
	assert.Equal(t, tx.Message.Instructions, decoded.Message.Instructions)
}

func TestTransaction_SignUnknownAccount(t *testing.T) {
	payerPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	programPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, otherPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		payerPub,
		NewInstruction(programPub, nil, NewAccountMeta(payerPub, true)),
	)

	assert.Error(t, tx.Sign(otherPriv))
}
