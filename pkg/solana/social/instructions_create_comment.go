package social

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/blockchan/blockchan-server/pkg/solana"
)

type CreateCommentInstructionArgs struct {
	PostId  string
	Content string
}

type CreateCommentInstructionAccounts struct {
	User      ed25519.PublicKey
	Comment   ed25519.PublicKey
	Post      ed25519.PublicKey
	PostOwner ed25519.PublicKey
}

func (args *CreateCommentInstructionArgs) Marshal() []byte {
	var offset int

	data := make([]byte, 1+stringSize(args.PostId)+stringSize(args.Content))

	putInstructionType(data, InstructionTypeCreateComment, &offset)
	putString(data, args.PostId, &offset)
	putString(data, args.Content, &offset)

	return data
}

func (args *CreateCommentInstructionArgs) Unmarshal(data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstructionData
	}

	var offset int

	var instructionType InstructionType
	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeCreateComment {
		return ErrInvalidInstructionData
	}

	if err := getString(data, &args.PostId, &offset); err != nil {
		return ErrInvalidInstructionData
	}
	if err := getString(data, &args.Content, &offset); err != nil {
		return ErrInvalidInstructionData
	}

	return nil
}

func NewCreateCommentInstruction(
	accounts *CreateCommentInstructionAccounts,
	args *CreateCommentInstructionArgs,
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
				PublicKey:  accounts.Comment,
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

type DecompiledCreateComment struct {
	User      ed25519.PublicKey
	Comment   ed25519.PublicKey
	Post      ed25519.PublicKey
	PostOwner ed25519.PublicKey

	PostId  string
	Content string
}

func DecompileCreateComment(m solana.Message, index int) (*DecompiledCreateComment, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], PROGRAM_ADDRESS) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || InstructionType(i.Data[0]) != InstructionTypeCreateComment {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != 5 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	var args CreateCommentInstructionArgs
	if err := args.Unmarshal(i.Data); err != nil {
		return nil, err
	}

	return &DecompiledCreateComment{
		User:      m.Accounts[i.Accounts[0]],
		Comment:   m.Accounts[i.Accounts[1]],
		Post:      m.Accounts[i.Accounts[2]],
		PostOwner: m.Accounts[i.Accounts[3]],
		PostId:    args.PostId,
		Content:   args.Content,
	}, nil
}
