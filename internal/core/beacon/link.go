package beacon

import (
	"context"
	"fmt"
)

// Serializer turns a value into a compact payload
type Serializer interface {
	Serialize(ctx context.Context, v any) (string, error)
}

// PairingLink builds base?type=tzip10&data=<compact payload of req>
// Existing query parameters on base are kept; type and data are overwritten
func PairingLink(ctx context.Context, base string, req PairingRequest, s Serializer) (string, error) {
	u, ok := ParseURL(base)
	if !ok {
		return "", fmt.Errorf("beacon: pairing link base %q is not an absolute url", base)
	}
	data, err := s.Serialize(ctx, req.Value())
	if err != nil {
		return "", fmt.Errorf("beacon: serialize pairing request: %w", err)
	}
	q := u.Query()
	q.Set(ParamType, LinkType)
	q.Set(ParamData, data)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
