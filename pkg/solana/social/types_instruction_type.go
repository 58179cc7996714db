package social

type InstructionType uint8

const (
	InstructionTypeCreatePost InstructionType = iota
	InstructionTypeCreateComment
	InstructionTypeLikePost
)

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

func getInstructionType(src []byte, dst *InstructionType, offset *int) {
	*dst = InstructionType(src[*offset])
	*offset += 1
}

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeCreatePost:
		return "create_post"
	case InstructionTypeCreateComment:
		return "create_comment"
	case InstructionTypeLikePost:
		return "like_post"
	}
	return "unknown"
}
