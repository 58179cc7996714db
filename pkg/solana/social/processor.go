package social

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/blockchan/blockchan-server/pkg/solana/runtime"
)

// Processor executes program instructions against the accounts supplied by
// the host. Execution is run-to-completion: the first failed step aborts the
// handler, and side effects already committed through a host collaborator
// are not undone.
type Processor struct {
	log *logrus.Entry
	env runtime.Environment
}

func NewProcessor(env runtime.Environment) *Processor {
	return &Processor{
		log: logrus.StandardLogger().WithField("type", "social/processor"),
		env: env,
	}
}

// Process decodes the instruction payload and dispatches to the handler for
// its variant. No handler runs if the payload doesn't decode.
func (p *Processor) Process(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstructionData
	}

	switch InstructionType(data[0]) {
	case InstructionTypeCreatePost:
		var args CreatePostInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processCreatePost(programID, accounts, &args)
	case InstructionTypeCreateComment:
		var args CreateCommentInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processCreateComment(programID, accounts, &args)
	case InstructionTypeLikePost:
		var args LikePostInstructionArgs
		if err := args.Unmarshal(data); err != nil {
			return err
		}
		return p.processLikePost(programID, accounts, &args)
	default:
		return ErrInvalidInstructionData
	}
}

func (p *Processor) processCreatePost(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, args *CreatePostInstructionArgs) error {
	if len(accounts) < 4 {
		return runtime.ErrNotEnoughAccountKeys
	}

	user := accounts[0]
	post := accounts[1]
	feeWallet := accounts[3]

	if !user.IsSigner {
		return runtime.ErrMissingRequiredSignature
	}

	if err := p.env.Transfer(user, feeWallet, CreatePostFee); err != nil {
		return err
	}

	size := uint64(GetPostDataSize(args.Title, args.Content))
	if err := p.env.CreateAccount(user, post, programID, p.env.MinimumBalance(size), size); err != nil {
		return err
	}

	postData := PostData{
		Creator:      user.Address,
		Title:        args.Title,
		Content:      args.Content,
		Votes:        0,
		CommentCount: 0,
		CreatedAt:    uint64(p.env.Now().Unix()),
	}
	copy(post.Data, postData.Marshal())

	p.log.WithFields(logrus.Fields{
		"post":    base58.Encode(post.Address),
		"creator": base58.Encode(user.Address),
	}).Debug("post created")

	return nil
}

func (p *Processor) processCreateComment(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, args *CreateCommentInstructionArgs) error {
	if len(accounts) < 5 {
		return runtime.ErrNotEnoughAccountKeys
	}

	user := accounts[0]
	comment := accounts[1]
	post := accounts[2]
	postOwner := accounts[3]

	if !user.IsSigner {
		return runtime.ErrMissingRequiredSignature
	}

	var postData PostData
	if err := postData.Unmarshal(post.Data); err != nil {
		return err
	}
	if !bytes.Equal(postData.Creator, postOwner.Address) {
		return runtime.ErrInvalidArgument
	}

	// The comment fee goes to the post owner, before the comment account is
	// provisioned.
	if err := p.env.Transfer(user, postOwner, CreateCommentFee); err != nil {
		return err
	}

	size := uint64(GetCommentDataSize(args.PostId, args.Content))
	if err := p.env.CreateAccount(user, comment, programID, p.env.MinimumBalance(size), size); err != nil {
		return err
	}

	commentData := CommentData{
		PostId:    args.PostId,
		Creator:   user.Address,
		Content:   args.Content,
		CreatedAt: uint64(p.env.Now().Unix()),
	}
	copy(comment.Data, commentData.Marshal())

	postData.CommentCount += 1
	copy(post.Data, postData.Marshal())

	p.log.WithFields(logrus.Fields{
		"post":    base58.Encode(post.Address),
		"comment": base58.Encode(comment.Address),
		"creator": base58.Encode(user.Address),
	}).Debug("comment added")

	return nil
}

func (p *Processor) processLikePost(programID ed25519.PublicKey, accounts []*runtime.AccountInfo, args *LikePostInstructionArgs) error {
	if len(accounts) < 4 {
		return runtime.ErrNotEnoughAccountKeys
	}

	user := accounts[0]
	post := accounts[1]
	postOwner := accounts[2]

	if !user.IsSigner {
		return runtime.ErrMissingRequiredSignature
	}

	var postData PostData
	if err := postData.Unmarshal(post.Data); err != nil {
		return err
	}
	if !bytes.Equal(postData.Creator, postOwner.Address) {
		return runtime.ErrInvalidArgument
	}

	if err := p.env.Transfer(user, postOwner, LikePostFee); err != nil {
		return err
	}

	postData.Votes += 1
	copy(post.Data, postData.Marshal())

	p.log.WithFields(logrus.Fields{
		"post":  base58.Encode(post.Address),
		"liker": base58.Encode(user.Address),
	}).Debug("post liked")

	return nil
}
