package social

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/blockchan/blockchan-server/pkg/solana"
)

type CreatePostInstructionArgs struct {
	Title   string
	Content string
}

type CreatePostInstructionAccounts struct {
	User      ed25519.PublicKey
	Post      ed25519.PublicKey
	FeeWallet ed25519.PublicKey
}

func (args *CreatePostInstructionArgs) Marshal() []byte {
	var offset int

	data := make([]byte, 1+stringSize(args.Title)+stringSize(args.Content))

	putInstructionType(data, InstructionTypeCreatePost, &offset)
	putString(data, args.Title, &offset)
	putString(data, args.Content, &offset)

	return data
}

func (args *CreatePostInstructionArgs) Unmarshal(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstructionData
	}

	var offset int

	var instructionType InstructionType
	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeCreatePost {
		return ErrInvalidInstructionData
	}

	if err := getString(data, &args.Title, &offset); err != nil {
		return ErrInvalidInstructionData
	}
	if err := getString(data, &args.Content, &offset); err != nil {
		return ErrInvalidInstructionData
	}

	return nil
}

func NewCreatePostInstruction(
	accounts *CreatePostInstructionAccounts,
	args *CreatePostInstructionArgs,
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
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.FeeWallet,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

type DecompiledCreatePost struct {
	User      ed25519.PublicKey
	Post      ed25519.PublicKey
	FeeWallet ed25519.PublicKey

	Title   string
	Content string
}

func DecompileCreatePost(m solana.Message, index int) (*DecompiledCreatePost, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], PROGRAM_ADDRESS) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || InstructionType(i.Data[0]) != InstructionTypeCreatePost {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 4 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	var args CreatePostInstructionArgs
	if err := args.Unmarshal(i.Data); err != nil {
		return nil, err
	}

	return &DecompiledCreatePost{
		User:      m.Accounts[i.Accounts[0]],
		Post:      m.Accounts[i.Accounts[1]],
		FeeWallet: m.Accounts[i.Accounts[3]],
		Title:     args.Title,
		Content:   args.Content,
	}, nil
}
