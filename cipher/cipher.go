/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package cipher seals document bodies into hex-encoded AES-256-CBC
// envelopes. The key is the SHA-256 digest of the passphrase. Envelopes carry
// no integrity tag; a wrong passphrase is detected through the padding.
package cipher

import (
	"bytes"
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"unicode/utf8"

	"github.com/suparena/ltistore/errors"
	"github.com/suparena/ltistore/storagemodels"
)

// Encrypt seals plaintext under passphrase with a fresh random IV.
func Encrypt(plaintext, passphrase string) (storagemodels.Envelope, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return storagemodels.Envelope{}, err
	}
	return encryptWithIV(plaintext, passphrase, iv)
}

// Decrypt opens a hex-encoded ciphertext with its hex-encoded IV.
// Every failure is reported as a DecryptionError.
func Decrypt(data, iv, passphrase string) (string, error) {
	ivBytes, err := hex.DecodeString(iv)
	if err != nil {
		return "", errors.NewDecryptionError("invalid iv encoding", err)
	}
	if len(ivBytes) != aes.BlockSize {
		return "", errors.NewDecryptionError("invalid iv length", nil)
	}
	ct, err := hex.DecodeString(data)
	if err != nil {
		return "", errors.NewDecryptionError("invalid data encoding", err)
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", errors.NewDecryptionError("ciphertext is not a whole number of blocks", nil)
	}

	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return "", errors.NewDecryptionError("cipher setup", err)
	}
	pt := make([]byte, len(ct))
	stdcipher.NewCBCDecrypter(block, ivBytes).CryptBlocks(pt, ct)

	pt, ok := unpad(pt)
	if !ok {
		return "", errors.NewDecryptionError("bad padding", nil)
	}
	if !utf8.Valid(pt) {
		return "", errors.NewDecryptionError("plaintext is not valid UTF-8", nil)
	}
	return string(pt), nil
}

// Open decrypts an envelope.
func Open(env storagemodels.Envelope, passphrase string) (string, error) {
	return Decrypt(env.Data, env.IV, passphrase)
}

func encryptWithIV(plaintext, passphrase string, iv []byte) (storagemodels.Envelope, error) {
	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return storagemodels.Envelope{}, err
	}
	pt := pad([]byte(plaintext))
	ct := make([]byte, len(pt))
	stdcipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, pt)

	return storagemodels.Envelope{
		IV:   hex.EncodeToString(iv),
		Data: hex.EncodeToString(ct),
	}, nil
}

func deriveKey(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:]
}

// pad applies PKCS#7 padding.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
