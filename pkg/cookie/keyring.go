package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	encryptionInfo = "toastkit/cookie/encryption"
	signingInfo    = "toastkit/cookie/signing"
)

var b64 = base64.RawURLEncoding

// keyPair holds the keys derived from one secret.
type keyPair struct {
	aead cipher.AEAD
	sign []byte
}

// keyring is ordered newest first. Only keyring[0] writes.
type keyring []keyPair

func deriveKeys(secret string) (keyPair, error) {
	enc := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(encryptionInfo)), enc); err != nil {
		return keyPair{}, errors.Join(ErrKeyDerivation, err)
	}
	sign := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(signingInfo)), sign); err != nil {
		return keyPair{}, errors.Join(ErrKeyDerivation, err)
	}

	block, err := aes.NewCipher(enc)
	if err != nil {
		return keyPair{}, errors.Join(ErrKeyDerivation, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keyPair{}, errors.Join(ErrKeyDerivation, err)
	}

	return keyPair{aead: aead, sign: sign}, nil
}

func (kp keyPair) mac(name, value string) []byte {
	h := hmac.New(sha256.New, kp.sign)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

// sign returns base64(value) "." base64(mac).
func (k keyring) sign(name, value string) string {
	return b64.EncodeToString([]byte(value)) + "." + b64.EncodeToString(k[0].mac(name, value))
}

func (k keyring) verify(name, signed string) (string, error) {
	encoded, sig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	value, err := b64.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	got, err := b64.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, kp := range k {
		if hmac.Equal(got, kp.mac(name, string(value))) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// seal returns base64(nonce || ciphertext).
func (k keyring) seal(name, value string) (string, error) {
	aead := k[0].aead
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return b64.EncodeToString(aead.Seal(nonce, nonce, []byte(value), []byte(name))), nil
}

func (k keyring) open(name, sealed string) (string, error) {
	data, err := b64.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, kp := range k {
		n := kp.aead.NonceSize()
		if len(data) < n+kp.aead.Overhead() {
			return "", ErrInvalidFormat
		}
		if plain, err := kp.aead.Open(nil, data[:n], data[n:], []byte(name)); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}
