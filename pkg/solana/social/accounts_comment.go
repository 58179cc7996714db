package social

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const commentDataFixedSize = (32 + // creator
	8) // created_at

// CommentData is the record held by a comment account. It is written once
// and never mutated. PostId is stored exactly as supplied by the caller; the
// only link to the parent post enforced at creation time is the creator /
// post owner identity check.
type CommentData struct {
	PostId    string
	Creator   ed25519.PublicKey
	Content   string
	CreatedAt uint64
}

// GetCommentDataSize returns the exact encoded size of a comment record
// holding the given post id and content.
func GetCommentDataSize(postId, content string) int {
	return commentDataFixedSize + stringSize(postId) + stringSize(content)
}

func (obj *CommentData) Size() int {
	return GetCommentDataSize(obj.PostId, obj.Content)
}

func (obj *CommentData) Marshal() []byte {
	data := make([]byte, obj.Size())

	var offset int

	putString(data, obj.PostId, &offset)
	putKey(data, obj.Creator, &offset)
	putString(data, obj.Content, &offset)
	putUint64(data, obj.CreatedAt, &offset)

	return data
}

func (obj *CommentData) Unmarshal(data []byte) error {
	var offset int

	if err := getString(data, &obj.PostId, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getKey(data, &obj.Creator, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Content, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if len(data) < offset+8 {
		return ErrInvalidAccountData
	}

	getUint64(data, &obj.CreatedAt, &offset)

	return nil
}

func (obj *CommentData) String() string {
	return fmt.Sprintf(
		"CommentData{post_id=%s,creator=%s,content=%s,created_at=%d}",
		obj.PostId,
		base58.Encode(obj.Creator),
		obj.Content,
		obj.CreatedAt,
	)
}
