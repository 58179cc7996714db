package social

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockchan/blockchan-server/pkg/solana/runtime"
)

func TestProcessor_EndToEnd(t *testing.T) {
	ledger := runtime.NewLedger()
	ledger.SetNow(time.Unix(1735689600, 0))
	processor := NewProcessor(ledger)

	userU := fundedSigner(t, ledger, 1_000_000_000)
	userV := fundedSigner(t, ledger, 1_000_000_000)
	userW := fundedSigner(t, ledger, 1_000_000_000)
	feeWallet := ledger.CreateFundedAccount(FEE_WALLET_ID, 0)

	post := newRecordAccount(t)

	// CreatePost(title="Hello", content="World") by U
	err := processor.Process(PROGRAM_ID, []*runtime.AccountInfo{userU, post, systemAccount(), feeWallet},
		(&CreatePostInstructionArgs{Title: "Hello", Content: "World"}).Marshal())
	require.NoError(t, err)

	size := uint64(GetPostDataSize("Hello", "World"))
	rent := ledger.MinimumBalance(size)

	assert.EqualValues(t, PROGRAM_ID, post.Owner)
	assert.EqualValues(t, size, len(post.Data))
	assert.Equal(t, rent, post.Lamports)
	assert.EqualValues(t, CreatePostFee, feeWallet.Lamports)
	assert.Equal(t, 1_000_000_000-CreatePostFee-rent, userU.Lamports)

	var postData PostData
	require.NoError(t, postData.Unmarshal(post.Data))
	assert.EqualValues(t, userU.Address, postData.Creator)
	assert.Equal(t, "Hello", postData.Title)
	assert.Equal(t, "World", postData.Content)
	assert.EqualValues(t, 0, postData.Votes)
	assert.EqualValues(t, 0, postData.CommentCount)
	assert.EqualValues(t, 1735689600, postData.CreatedAt)

	// CreateComment(post_id=<post address>, content="Nice!") by V with post_owner=U
	postId := base58.Encode(post.Address)
	comment := newRecordAccount(t)

	before := decodePost(t, post)
	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{userV, comment, post, userU, systemAccount()},
		(&CreateCommentInstructionArgs{PostId: postId, Content: "Nice!"}).Marshal())
	require.NoError(t, err)

	after := decodePost(t, post)
	assert.EqualValues(t, 1, after.CommentCount)
	before.CommentCount, after.CommentCount = 0, 0
	assert.Equal(t, before, after)

	var commentData CommentData
	require.NoError(t, commentData.Unmarshal(comment.Data))
	assert.Equal(t, postId, commentData.PostId)
	assert.EqualValues(t, userV.Address, commentData.Creator)
	assert.Equal(t, "Nice!", commentData.Content)
	assert.EqualValues(t, 1735689600, commentData.CreatedAt)
	assert.EqualValues(t, PROGRAM_ID, comment.Owner)

	// The comment fee goes to the post owner.
	assert.Equal(t, 1_000_000_000-CreatePostFee-rent+CreateCommentFee, userU.Lamports)

	// LikePost by W with post_owner=U
	before = decodePost(t, post)
	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{userW, post, userU, systemAccount()},
		(&LikePostInstructionArgs{PostId: postId}).Marshal())
	require.NoError(t, err)
	assert.EqualValues(t, 1_000_000_000-LikePostFee, userW.Lamports)

	after = decodePost(t, post)
	assert.EqualValues(t, 1, after.Votes)
	before.Votes, after.Votes = 0, 0
	assert.Equal(t, before, after)

	// CreateComment with the wrong post owner fails and mutates nothing.
	before = decodePost(t, post)
	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{userW, newRecordAccount(t), post, userV, systemAccount()},
		(&CreateCommentInstructionArgs{PostId: postId, Content: "Mine!"}).Marshal())
	assert.Equal(t, runtime.ErrInvalidArgument, err)
	assert.Equal(t, before, decodePost(t, post))
	assert.EqualValues(t, 1, before.CommentCount)
}

func TestProcessor_MalformedInstruction(t *testing.T) {
	ledger := runtime.NewLedger()
	processor := NewProcessor(ledger)

	user := fundedSigner(t, ledger, 1_000_000_000)
	post := newRecordAccount(t)
	feeWallet := ledger.CreateFundedAccount(FEE_WALLET_ID, 0)
	accounts := []*runtime.AccountInfo{user, post, systemAccount(), feeWallet}

	// Empty payload
	assert.Equal(t, ErrInvalidInstructionData, processor.Process(PROGRAM_ID, accounts, nil))

	// Unknown discriminant
	assert.Equal(t, ErrInvalidInstructionData, processor.Process(PROGRAM_ID, accounts, []byte{42}))

	// Truncated fields
	payload := (&CreatePostInstructionArgs{Title: "Hello", Content: "World"}).Marshal()
	assert.Equal(t, ErrInvalidInstructionData, processor.Process(PROGRAM_ID, accounts, payload[:6]))

	// No handler ran: no fee was moved and nothing was provisioned.
	assert.EqualValues(t, 1_000_000_000, user.Lamports)
	assert.EqualValues(t, 0, feeWallet.Lamports)
	assert.Empty(t, post.Data)
}

func TestProcessor_MissingSignature(t *testing.T) {
	ledger := runtime.NewLedger()
	processor := NewProcessor(ledger)

	owner := fundedSigner(t, ledger, 1_000_000_000)
	feeWallet := ledger.CreateFundedAccount(FEE_WALLET_ID, 0)
	post := createPost(t, processor, ledger, owner, feeWallet, "Hello", "World")
	postId := base58.Encode(post.Address)

	user := ledger.CreateFundedAccount(newKey(t), 1_000_000_000)

	err := processor.Process(PROGRAM_ID, []*runtime.AccountInfo{user, newRecordAccount(t), systemAccount(), feeWallet},
		(&CreatePostInstructionArgs{Title: "a", Content: "b"}).Marshal())
	assert.Equal(t, runtime.ErrMissingRequiredSignature, err)

	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{user, newRecordAccount(t), post, owner, systemAccount()},
		(&CreateCommentInstructionArgs{PostId: postId, Content: "c"}).Marshal())
	assert.Equal(t, runtime.ErrMissingRequiredSignature, err)

	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{user, post, owner, systemAccount()},
		(&LikePostInstructionArgs{PostId: postId}).Marshal())
	assert.Equal(t, runtime.ErrMissingRequiredSignature, err)

	// Checked before any transfer or mutation.
	assert.EqualValues(t, 1_000_000_000, user.Lamports)
	postData := decodePost(t, post)
	assert.EqualValues(t, 0, postData.CommentCount)
	assert.EqualValues(t, 0, postData.Votes)
}

func TestProcessor_InsufficientFunds(t *testing.T) {
	ledger := runtime.NewLedger()
	processor := NewProcessor(ledger)

	owner := fundedSigner(t, ledger, 1_000_000_000)
	feeWallet := ledger.CreateFundedAccount(FEE_WALLET_ID, 0)
	post := createPost(t, processor, ledger, owner, feeWallet, "Hello", "World")
	postId := base58.Encode(post.Address)

	poor := fundedSigner(t, ledger, 100)

	newPost := newRecordAccount(t)
	err := processor.Process(PROGRAM_ID, []*runtime.AccountInfo{poor, newPost, systemAccount(), feeWallet},
		(&CreatePostInstructionArgs{Title: "a", Content: "b"}).Marshal())
	assert.Equal(t, runtime.ErrInsufficientFunds, err)
	assert.Empty(t, newPost.Data)
	assert.Nil(t, ledger.Account(newPost.Address))

	comment := newRecordAccount(t)
	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{poor, comment, post, owner, systemAccount()},
		(&CreateCommentInstructionArgs{PostId: postId, Content: "c"}).Marshal())
	assert.Equal(t, runtime.ErrInsufficientFunds, err)
	assert.Empty(t, comment.Data)
	assert.EqualValues(t, 0, decodePost(t, post).CommentCount)

	assert.EqualValues(t, 100, poor.Lamports)
}

func TestProcessor_InvalidAccountData(t *testing.T) {
	ledger := runtime.NewLedger()
	processor := NewProcessor(ledger)

	user := fundedSigner(t, ledger, 1_000_000_000)
	owner := fundedSigner(t, ledger, 1_000_000_000)

	garbage := newRecordAccount(t)
	garbage.Data = []byte{1, 2, 3}

	err := processor.Process(PROGRAM_ID, []*runtime.AccountInfo{user, newRecordAccount(t), garbage, owner, systemAccount()},
		(&CreateCommentInstructionArgs{PostId: "x", Content: "c"}).Marshal())
	assert.Equal(t, ErrInvalidAccountData, err)

	err = processor.Process(PROGRAM_ID, []*runtime.AccountInfo{user, garbage, owner, systemAccount()},
		(&LikePostInstructionArgs{PostId: "x"}).Marshal())
	assert.Equal(t, ErrInvalidAccountData, err)

	assert.EqualValues(t, 1_000_000_000, user.Lamports)
}

func TestProcessor_NotEnoughAccounts(t *testing.T) {
	ledger := runtime.NewLedger()
	processor := NewProcessor(ledger)

	user := fundedSigner(t, ledger, 1_000_000_000)

	err := processor.Process(PROGRAM_ID, []*runtime.AccountInfo{user},
		(&CreatePostInstructionArgs{Title: "a", Content: "b"}).Marshal())
	assert.Equal(t, runtime.ErrNotEnoughAccountKeys, err)
}

// Resubmitting the same CreateComment call charges the fee again and then
// fails at provisioning; the core performs no compensation.
func TestProcessor_ResubmitComment(t *testing.T) {
	ledger := runtime.NewLedger()
	processor := NewProcessor(ledger)

	owner := fundedSigner(t, ledger, 1_000_000_000)
	feeWallet := ledger.CreateFundedAccount(FEE_WALLET_ID, 0)
	post := createPost(t, processor, ledger, owner, feeWallet, "Hello", "World")
	postId := base58.Encode(post.Address)

	user := fundedSigner(t, ledger, 1_000_000_000)
	comment := newRecordAccount(t)
	accounts := []*runtime.AccountInfo{user, comment, post, owner, systemAccount()}
	payload := (&CreateCommentInstructionArgs{PostId: postId, Content: "Nice!"}).Marshal()

	require.NoError(t, processor.Process(PROGRAM_ID, accounts, payload))
	ownerBalance := owner.Lamports

	err := processor.Process(PROGRAM_ID, accounts, payload)
	assert.Equal(t, runtime.ErrAccountAlreadyInUse, err)

	// The fee moved again even though no comment was created.
	assert.Equal(t, ownerBalance+CreateCommentFee, owner.Lamports)
	assert.EqualValues(t, 1, decodePost(t, post).CommentCount)
}

func fundedSigner(t *testing.T, ledger *runtime.Ledger, lamports uint64) *runtime.AccountInfo {
	account := ledger.CreateFundedAccount(newKey(t), lamports)
	account.IsSigner = true
	return account
}

func newRecordAccount(t *testing.T) *runtime.AccountInfo {
	return &runtime.AccountInfo{
		Address:    newKey(t),
		IsWritable: true,
	}
}

func systemAccount() *runtime.AccountInfo {
	return &runtime.AccountInfo{
		Address: SYSTEM_PROGRAM_ID,
	}
}

func createPost(t *testing.T, processor *Processor, ledger *runtime.Ledger, owner, feeWallet *runtime.AccountInfo, title, content string) *runtime.AccountInfo {
	post := newRecordAccount(t)
	require.NoError(t, processor.Process(
		PROGRAM_ID,
		[]*runtime.AccountInfo{owner, post, systemAccount(), feeWallet},
		(&CreatePostInstructionArgs{Title: title, Content: content}).Marshal(),
	))
	return post
}

func decodePost(t *testing.T, post *runtime.AccountInfo) PostData {
	var postData PostData
	require.NoError(t, postData.Unmarshal(post.Data))
	return postData
}

func newKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
