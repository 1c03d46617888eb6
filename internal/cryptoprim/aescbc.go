// Package cryptoprim adapts the standard library's AES-CBC primitive
// to the fixed key/IV every encrypted Divoom variant shares.
package cryptoprim

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// Key and IV are the fixed, device-wide AES-128-CBC parameters. Static
// across all devices — a device-side design choice, not a flaw here.
const (
	Key = "78hrey23y28ogs89"
	IV  = "1234567890123456"
)

// ErrNotBlockAligned is returned when the ciphertext length is not a
// multiple of the AES block size. The decoder trusts block alignment
// and never strips padding; a misaligned buffer indicates a truncated
// or corrupt container.
var ErrNotBlockAligned = errors.New("cryptoprim: ciphertext not block-aligned")

// DecryptCBC decrypts ciphertext into a newly allocated buffer using
// the fixed Divoom key/IV and returns it; ciphertext is left unchanged.
// No padding is removed: callers that expect a
// specific plaintext length slice it themselves.
func DecryptCBC(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}
	block, err := aes.NewCipher([]byte(Key))
	if err != nil {
		return nil, fmt.Errorf("cryptoprim: %w", err)
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return nil, ErrNotBlockAligned
	}
	mode := cipher.NewCBCDecrypter(block, []byte(IV))
	plaintext := make([]byte, len(ciphertext))
	mode.CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}

// RotateLeft4 reconstructs the AnimSingle pre-rotation buffer: a zero
// byte is conceptually prepended to raw, then the resulting buffer is
// left-rotated by 4 bytes, i.e. rotated[i] = extended[(i+4) mod len]
// where extended = append([]byte{0}, raw...). Reproduced bit-exactly
// per the reference implementation; the intent of the leading zero
// byte is not otherwise documented.
func RotateLeft4(raw []byte) []byte {
	extended := make([]byte, len(raw)+1)
	copy(extended[1:], raw)
	n := len(extended)
	rotated := make([]byte, n)
	for i := 0; i < n; i++ {
		rotated[i] = extended[(i+4)%n]
	}
	return rotated
}
