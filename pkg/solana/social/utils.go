package social

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"

	"github.com/mr-tron/base58"
)

var errBufferTooSmall = errors.New("buffer too small")

func putKey(dst []byte, v ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], v)
	*offset += ed25519.PublicKeySize
}
func getKey(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if len(src) < *offset+ed25519.PublicKeySize {
		return errBufferTooSmall
	}

	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return nil
}

// Strings are length prefixed with a u32, per the borsh spec.
func putString(dst []byte, src string, offset *int) {
	putUint32(dst, uint32(len(src)), offset)
	copy(dst[*offset:], src)
	*offset += len(src)
}
func getString(src []byte, dst *string, offset *int) error {
	if len(src) < *offset+4 {
		return errBufferTooSmall
	}

	var length uint32
	getUint32(src, &length, offset)

	if uint64(len(src)) < uint64(*offset)+uint64(length) {
		return errBufferTooSmall
	}

	*dst = string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return nil
}

func stringSize(v string) int {
	return 4 + len(v)
}

func putUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}
func getUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
}

func putInt32(dst []byte, v int32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], uint32(v))
	*offset += 4
}
func getInt32(src []byte, dst *int32, offset *int) {
	*dst = int32(binary.LittleEndian.Uint32(src[*offset:]))
	*offset += 4
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
