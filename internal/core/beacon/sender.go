package beacon

import (
	"encoding/hex"
	"fmt"

	"beaconpair/internal/core/beacon/serializer"

	"golang.org/x/crypto/blake2b"
)

const senderIDLen = 5

// SenderID derives the short peer identifier Beacon uses to address messages:
// base58check(blake2b-40(publicKey bytes)). publicKey is hex encoded
func SenderID(publicKey string) (string, error) {
	raw, err := hex.DecodeString(publicKey)
	if err != nil {
		return "", fmt.Errorf("beacon: public key is not hex: %w", err)
	}
	h, err := blake2b.New(senderIDLen, nil)
	if err != nil {
		return "", err
	}
	h.Write(raw)
	return serializer.Encode(h.Sum(nil)), nil
}
