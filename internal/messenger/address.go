package messenger

import (
	"encoding/hex"
	"errors"
	"strings"
)

const (
	PublicKeySize = 32
	NospamSize    = 4
	ChecksumSize  = 2
	AddressSize   = PublicKeySize + NospamSize + ChecksumSize

	shortKeyLen = 8
)

var (
	ErrAddressLength   = errors.New("address must be 76 hex digits")
	ErrAddressHex      = errors.New("address is not hex")
	ErrAddressChecksum = errors.New("address checksum mismatch")
)

// Address is a friend address: public key, nospam value and checksum.
type Address [AddressSize]byte

// ParseAddress decodes and verifies a hex friend address. Case and
// surrounding space are ignored.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimSpace(s)
	if len(s) != 2*AddressSize {
		return a, ErrAddressLength
	}
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return a, ErrAddressHex
	}
	if a.checksum() != [ChecksumSize]byte(a[PublicKeySize+NospamSize:]) {
		return a, ErrAddressChecksum
	}
	return a, nil
}

// NewAddress builds an address with a valid checksum.
func NewAddress(key [PublicKeySize]byte, nospam [NospamSize]byte) Address {
	var a Address
	copy(a[:], key[:])
	copy(a[PublicKeySize:], nospam[:])
	sum := a.checksum()
	copy(a[PublicKeySize+NospamSize:], sum[:])
	return a
}

func (a Address) checksum() [ChecksumSize]byte {
	var sum [ChecksumSize]byte
	for i, b := range a[:PublicKeySize+NospamSize] {
		sum[i%ChecksumSize] ^= b
	}
	return sum
}

// Key returns the public key part in upper case hex.
func (a Address) Key() string {
	return strings.ToUpper(hex.EncodeToString(a[:PublicKeySize]))
}

// ShortKey is the abbreviated form of a public key shown to the user.
func ShortKey(key string) string {
	if len(key) > shortKeyLen {
		return key[:shortKeyLen]
	}
	return key
}

func (a Address) String() string {
	return strings.ToUpper(hex.EncodeToString(a[:]))
}
