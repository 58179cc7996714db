package social

import (
	"crypto/ed25519"
	"errors"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("bWbGoUe1QUVfy2uUTcMgq8jrQjn6uHKzDr9EdwhNWtf")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))

	// Wallet collecting post creation fees.
	FEE_WALLET_ADDRESS = mustBase58Decode("A3zCw8i5c4dEV5NRCeqPgwbZKCe1dpjxYsp699Hj19sh")
	FEE_WALLET_ID      = ed25519.PublicKey(FEE_WALLET_ADDRESS)
)

// Fee schedule, in lamports.
const (
	CreatePostFee    = 10_000_000 // 0.01 SOL
	CreateCommentFee = 5_000_000  // 0.005 SOL
	LikePostFee      = 1_000_000  // 0.001 SOL
)
