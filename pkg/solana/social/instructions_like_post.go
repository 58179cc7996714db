package social

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/blockchan/blockchan-server/pkg/solana"
)

type LikePostInstructionArgs struct {
	PostId string
}

type LikePostInstructionAccounts struct {
	User      ed25519.PublicKey
	Post      ed25519.PublicKey
	PostOwner ed25519.PublicKey
}

func (args *LikePostInstructionArgs) Marshal() []byte {
	var offset int

	data := make([]byte, 1+stringSize(args.PostId))

	putInstructionType(data, InstructionTypeLikePost, &offset)
	putString(data, args.PostId, &offset)

	return data
}

func (args *LikePostInstructionArgs) Unmarshal(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstructionData
	}

	var offset int

	var instructionType InstructionType
	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeLikePost {
		return ErrInvalidInstructionData
	}

	if err := getString(data, &args.PostId, &offset); err != nil {
		return ErrInvalidInstructionData
	}

	return nil
}

func NewLikePostInstruction(
	accounts *LikePostInstructionAccounts,
	args *LikePostInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: args.Marshal(),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Post,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PostOwner,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

type DecompiledLikePost struct {
	User      ed25519.PublicKey
	Post      ed25519.PublicKey
	PostOwner ed25519.PublicKey

	PostId string
}

func DecompileLikePost(m solana.Message, index int) (*DecompiledLikePost, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], PROGRAM_ADDRESS) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || InstructionType(i.Data[0]) != InstructionTypeLikePost {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 4 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	var args LikePostInstructionArgs
	if err := args.Unmarshal(i.Data); err != nil {
		return nil, err
	}

	return &DecompiledLikePost{
		User:      m.Accounts[i.Accounts[0]],
		Post:      m.Accounts[i.Accounts[1]],
		PostOwner: m.Accounts[i.Accounts[2]],
		PostId:    args.PostId,
	}, nil
}
