// Package crypto implements encryption-at-rest and password hashing for
// snippets: AES-256-CBC with PKCS#7 padding under a server-wide key, and
// PBKDF2-SHA256 password hashes with per-record salts.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of generated password salts.
	SaltSize = 16
	// hashIterations is the PBKDF2 iteration count.
	hashIterations = 1000
	// hashSize is the PBKDF2 output length.
	hashSize = 32
)

// ErrDecryption is returned when ciphertext, IV, and key are inconsistent
// (wrong key, corrupted data, tampered IV). Callers must treat it as a
// hard failure, never as empty content.
var ErrDecryption = errors.New("decryption failed")

// Cipher encrypts and decrypts snippet bodies under a single
// process-wide secret key.
type Cipher struct {
	key []byte
}

// NewCipher derives an AES-256 key from the configured secret and returns
// a Cipher. The secret must be non-empty; there is no fallback default.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("encryption key is not configured")
	}
	key := sha256.Sum256([]byte(secret))
	return &Cipher{key: key[:]}, nil
}

// Encrypt encrypts plaintext and returns the ciphertext together with the
// freshly generated 16-byte IV. Encrypting the same plaintext twice yields
// different ciphertext because every call draws a new random IV.
func (c *Cipher) Encrypt(plaintext []byte) (ciphertext, iv []byte, err error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}

	iv = make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, fmt.Errorf("generate iv: %w", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, iv, nil
}

// Decrypt is the inverse of Encrypt. It returns ErrDecryption if the
// ciphertext or IV is malformed or the padding does not verify.
func (c *Cipher) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: bad iv length %d", ErrDecryption, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: bad ciphertext length %d", ErrDecryption, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return unpadded, nil
}

// HashPassword derives a password hash with PBKDF2-SHA256. If salt is nil
// a fresh random salt is generated. The same password and salt always
// produce the same hash.
func HashPassword(password string, salt []byte) (hash, usedSalt []byte, err error) {
	if salt == nil {
		salt = make([]byte, SaltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, fmt.Errorf("generate salt: %w", err)
		}
	}
	hash = pbkdf2.Key([]byte(password), salt, hashIterations, hashSize, sha256.New)
	return hash, salt, nil
}

// VerifyPassword recomputes the hash for password and salt and compares it
// to the stored hash in constant time.
func VerifyPassword(password string, hash, salt []byte) bool {
	computed := pbkdf2.Key([]byte(password), salt, hashIterations, hashSize, sha256.New)
	return subtle.ConstantTimeCompare(computed, hash) == 1
}

// pad appends PKCS#7 padding up to the next multiple of blockSize.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad strips PKCS#7 padding, validating every padding byte.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
