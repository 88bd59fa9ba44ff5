// Package serializer implements the compact payload encoding used by Beacon pairing links
// The JSON text of a message is suffixed with a 4 byte double SHA-256 checksum and the
// result is base58 encoded (bitcoin alphabet), aka base58check
package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

const checksumLen = 4

var (
	// ErrNilPayload is returned when there is no encoded payload at all (e.g. a missing query parameter)
	ErrNilPayload = errors.New("serializer: encoded payload needs to be a string")

	// ErrAlphabet is returned for empty input or characters outside the base58 alphabet
	ErrAlphabet = errors.New("serializer: invalid base58 payload")

	// ErrTooShort is returned when the decoded bytes cannot hold a checksum
	ErrTooShort = errors.New("serializer: payload too short")

	// ErrChecksum is returned when the trailing checksum does not match the body
	ErrChecksum = errors.New("serializer: invalid checksum")

	// ErrJSON is returned when the checksummed body is not JSON
	ErrJSON = errors.New("serializer: payload is not valid JSON")
)

// Codec is the Beacon compact payload codec. The zero value is ready to use
type Codec struct{}

// New returns a Codec
func New() Codec { return Codec{} }

// Serialize encodes v as JSON and wraps it in base58check.
// HTML characters are written as is, matching JSON.stringify
func (Codec) Serialize(ctx context.Context, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("serializer: marshal: %w", err)
	}
	return Encode(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Deserialize reverses Serialize. A nil encoded pointer means the payload was absent
// and is rejected with ErrNilPayload
func (Codec) Deserialize(ctx context.Context, encoded *string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if encoded == nil {
		return nil, ErrNilPayload
	}
	body, err := Decode(*encoded)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSON, err)
	}
	return out, nil
}

// Encode appends the checksum to raw and base58 encodes the result
func Encode(raw []byte) string {
	sum := checksum(raw)
	buf := make([]byte, 0, len(raw)+checksumLen)
	buf = append(buf, raw...)
	buf = append(buf, sum[:]...)
	return base58.Encode(buf)
}

// Decode base58 decodes s, verifies and strips the checksum
func Decode(s string) ([]byte, error) {
	buf, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlphabet, err)
	}
	if len(buf) < checksumLen {
		return nil, ErrTooShort
	}
	body, tail := buf[:len(buf)-checksumLen], buf[len(buf)-checksumLen:]
	sum := checksum(body)
	if !bytes.Equal(sum[:], tail) {
		return nil, ErrChecksum
	}
	return body, nil
}

func checksum(b []byte) [checksumLen]byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	var out [checksumLen]byte
	copy(out[:], second[:checksumLen])
	return out
}
