package social

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// Fixed-width portion of a post record: creator, votes, comment_count and
// created_at. The two strings add their length-prefixed sizes on top.
const postDataFixedSize = (32 + // creator
	4 + // votes
	4 + // comment_count
	8) // created_at

// PostData is the record held by a post account.
type PostData struct {
	Creator      ed25519.PublicKey
	Title        string
	Content      string
	Votes        int32
	CommentCount uint32
	CreatedAt    uint64
}

// GetPostDataSize returns the exact encoded size of a post record holding
// the given title and content. Post accounts are provisioned with exactly
// this many bytes, no slack.
func GetPostDataSize(title, content string) int {
	return postDataFixedSize + stringSize(title) + stringSize(content)
}

func (obj *PostData) Size() int {
	return GetPostDataSize(obj.Title, obj.Content)
}

func (obj *PostData) Marshal() []byte {
	data := make([]byte, obj.Size())

	var offset int

	putKey(data, obj.Creator, &offset)
	putString(data, obj.Title, &offset)
	putString(data, obj.Content, &offset)
	putInt32(data, obj.Votes, &offset)
	putUint32(data, obj.CommentCount, &offset)
	putUint64(data, obj.CreatedAt, &offset)

	return data
}

func (obj *PostData) Unmarshal(data []byte) error {
	var offset int

	if err := getKey(data, &obj.Creator, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Title, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if err := getString(data, &obj.Content, &offset); err != nil {
		return ErrInvalidAccountData
	}
	if len(data) < offset+16 {
		return ErrInvalidAccountData
	}

	getInt32(data, &obj.Votes, &offset)
	getUint32(data, &obj.CommentCount, &offset)
	getUint64(data, &obj.CreatedAt, &offset)

	return nil
}

func (obj *PostData) String() string {
	return fmt.Sprintf(
		"PostData{creator=%s,title=%s,content=%s,votes=%d,comment_count=%d,created_at=%d}",
		base58.Encode(obj.Creator),
		obj.Title,
		obj.Content,
		obj.Votes,
		obj.CommentCount,
		obj.CreatedAt,
	)
}
