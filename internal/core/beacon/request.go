// Package beacon recognises Beacon (TZIP-10) peer pairing requests in untagged IAC payloads
//
// Decode order
// 1 direct JSON; a successful parse is final even when the value is not a pairing request
// 2 only when 1 fails to parse
//   - URL with type=tzip10: the data query parameter is a compact payload
//   - URL with any other type: nothing more is tried
//   - not a URL: the whole string is a compact payload
//
// IsPairingRequest is the structural check applied to whatever the chain produced
package beacon

// JSON field names of a pairing request
const (
	FieldID          = "id"
	FieldType        = "type"
	FieldName        = "name"
	FieldVersion     = "version"
	FieldPublicKey   = "publicKey"
	FieldRelayServer = "relayServer"
	FieldIcon        = "icon"
	FieldAppURL      = "appUrl"
)

// PairingRequest proposes a secure channel with a remote peer
// Name, PublicKey and RelayServer are required; Version is carried but never checked
type PairingRequest struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	PublicKey   string `json:"publicKey"`
	RelayServer string `json:"relayServer"`
	Icon        string `json:"icon,omitempty"`
	AppURL      string `json:"appUrl,omitempty"`

	// Raw is the decoded object exactly as received
	Raw map[string]any `json:"-"`
}

// IsPairingRequest reports whether v is an object whose name, publicKey and
// relayServer members are strings. Presence and type only: empty strings pass,
// version is not looked at so v1 requests without one are accepted
func IsPairingRequest(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return isString(m, FieldName) && isString(m, FieldPublicKey) && isString(m, FieldRelayServer)
}

// FromValue narrows a decoded value to a PairingRequest
func FromValue(v any) (PairingRequest, bool) {
	if !IsPairingRequest(v) {
		return PairingRequest{}, false
	}
	m := v.(map[string]any)
	return PairingRequest{
		ID:          optString(m, FieldID),
		Type:        optString(m, FieldType),
		Name:        m[FieldName].(string),
		Version:     optString(m, FieldVersion),
		PublicKey:   m[FieldPublicKey].(string),
		RelayServer: m[FieldRelayServer].(string),
		Icon:        optString(m, FieldIcon),
		AppURL:      optString(m, FieldAppURL),
		Raw:         m,
	}, true
}

// Value returns the object form of r: Raw when the request was decoded, otherwise
// a map built from the typed fields
func (r PairingRequest) Value() map[string]any {
	if r.Raw != nil {
		return r.Raw
	}
	m := map[string]any{
		FieldName:        r.Name,
		FieldPublicKey:   r.PublicKey,
		FieldRelayServer: r.RelayServer,
	}
	for k, v := range map[string]string{
		FieldID:      r.ID,
		FieldType:    r.Type,
		FieldVersion: r.Version,
		FieldIcon:    r.Icon,
		FieldAppURL:  r.AppURL,
	} {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

func isString(m map[string]any, k string) bool {
	_, ok := m[k].(string)
	return ok
}

func optString(m map[string]any, k string) string {
	s, _ := m[k].(string)
	return s
}
