package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// keyLen — длина ключа для AES‑256 (в байтах).
const keyLen = 32

// kdfIterations is fixed for the lifetime of the stored ciphertexts:
// changing it invalidates every value written so far.
const kdfIterations = 4096

// kdfSalt is static because the deployment uses a single shared passphrase;
// there is no per-user or per-record key material in this design.
var kdfSalt = []byte("passlocker.v1")

// ErrDecrypt is returned for any ciphertext that cannot be recovered:
// malformed encoding, truncated payload, or a key mismatch.
var ErrDecrypt = errors.New("decryption failed")

// deriveKey превращает строковый ключ из конфигурации в ключ AES‑256.
func deriveKey(key string) []byte {
	return pbkdf2.Key([]byte(key), kdfSalt, kdfIterations, keyLen, sha256.New)
}

// Encrypt шифрует plaintext с помощью AES‑GCM под ключом, полученным из key.
// Возвращает base64-строку вида nonce||ciphertext. Одинаковый вход даёт
// разный выход (случайный nonce), но всегда расшифровывается тем же ключом.
func Encrypt(plaintext, key string) (string, error) {
	if key == "" {
		return "", errors.New("empty encryption key")
	}
	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	out := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt расшифровывает строку, полученную из Encrypt. Любая ошибка
// восстановления (битый base64, короткий payload, чужой ключ) возвращается
// как ErrDecrypt, чтобы вызывающий мог деградировать, а не падать.
func Decrypt(ciphertext, key string) (string, error) {
	if key == "" {
		return "", errors.New("empty encryption key")
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecrypt
	}
	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(raw) < gcm.NonceSize() {
		return "", ErrDecrypt
	}
	nonce, payload := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, payload, nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
