// Package cardvault seals payment instrument data before it is written to the
// store. Only the last four digits of an instrument number are kept readable.
package cardvault

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
)

var ErrCorrupted = errors.New("sealed value is corrupted")

type Vault struct {
	key       [keySize]byte
	ephemeral bool
}

// New builds a vault from a base64 encoded 32 byte key. An empty key yields a
// random per-process key; data sealed with it can't be opened after a restart.
func New(encodedKey string) (*Vault, error) {
	v := &Vault{}
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey == "" {
		if _, err := io.ReadFull(rand.Reader, v.key[:]); err != nil {
			return nil, fmt.Errorf("can't generate card data key: %w", err)
		}
		v.ephemeral = true
		return v, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("card data key is not base64: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("card data key must be %d bytes, got %d", keySize, len(raw))
	}
	copy(v.key[:], raw)
	return v, nil
}

func (v *Vault) Ephemeral() bool {
	return v.ephemeral
}

func (v *Vault) Seal(plain string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("can't generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(plain), &nonce, &v.key), nil
}

func (v *Vault) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrCorrupted
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &v.key)
	if !ok {
		return "", ErrCorrupted
	}
	return string(plain), nil
}

// Last4 returns the trailing four characters of an instrument number.
func Last4(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

func Mask(last4 string) string {
	return "**** **** **** " + last4
}
