package beacon

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"beaconpair/internal/core/beacon/serializer"
)

// recordingDeserializer wraps the real codec and records what it was asked to decode
type recordingDeserializer struct {
	calls []*string
	codec serializer.Codec
}

func (r *recordingDeserializer) Deserialize(ctx context.Context, encoded *string) (any, error) {
	r.calls = append(r.calls, encoded)
	return r.codec.Deserialize(ctx, encoded)
}

func compact(t *testing.T, v any) string {
	t.Helper()
	s, err := serializer.New().Serialize(context.Background(), v)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return s
}

func validRequest() map[string]any {
	return map[string]any{
		"name":        "Wallet",
		"publicKey":   "abc123",
		"relayServer": "relay.example.com",
	}
}

func TestIsPairingRequest(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want bool
	}{
		{"valid", validRequest(), true},
		{"empty strings", map[string]any{"name": "", "publicKey": "", "relayServer": ""}, true},
		{"any version", map[string]any{"name": "a", "publicKey": "b", "relayServer": "c", "version": 99.0}, true},
		{"missing name", map[string]any{"publicKey": "b", "relayServer": "c"}, false},
		{"missing publicKey", map[string]any{"name": "a", "relayServer": "c"}, false},
		{"missing relayServer", map[string]any{"name": "a", "publicKey": "b"}, false},
		{"numeric name", map[string]any{"name": 1.0, "publicKey": "b", "relayServer": "c"}, false},
		{"null relay", map[string]any{"name": "a", "publicKey": "b", "relayServer": nil}, false},
		{"nil", nil, false},
		{"string", "name", false},
		{"array", []any{"a", "b", "c"}, false},
		{"number", 123.0, false},
	}
	for _, tc := range cases {
		if got := IsPairingRequest(tc.in); got != tc.want {
			t.Fatalf("%s: IsPairingRequest = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFromValue(t *testing.T) {
	in := validRequest()
	in["version"] = "3"
	in["id"] = "peer-1"
	in["type"] = "p2p-pairing-request"
	in["appUrl"] = "https://wallet.example.com"
	in["extra"] = true

	req, ok := FromValue(in)
	if !ok {
		t.Fatalf("FromValue rejected a valid request")
	}
	if req.Name != "Wallet" || req.PublicKey != "abc123" || req.RelayServer != "relay.example.com" {
		t.Fatalf("required fields mismatch: %+v", req)
	}
	if req.Version != "3" || req.ID != "peer-1" || req.Type != "p2p-pairing-request" || req.AppURL == "" {
		t.Fatalf("optional fields mismatch: %+v", req)
	}
	if req.Raw["extra"] != true {
		t.Fatalf("Raw should keep unknown members")
	}
	if _, ok := FromValue(map[string]any{"name": "x"}); ok {
		t.Fatalf("FromValue accepted an incomplete request")
	}
}

func TestPairingRequest_Value(t *testing.T) {
	req := PairingRequest{Name: "n", PublicKey: "pk", RelayServer: "r", Version: "2"}
	v := req.Value()
	if !IsPairingRequest(v) {
		t.Fatalf("Value() is not a pairing request: %v", v)
	}
	if v[FieldVersion] != "2" {
		t.Fatalf("version not carried: %v", v)
	}
	if _, ok := v[FieldIcon]; ok {
		t.Fatalf("empty optional fields should be omitted: %v", v)
	}
	raw := validRequest()
	if got := (PairingRequest{Raw: raw}).Value(); got["name"] != "Wallet" {
		t.Fatalf("Value() should return Raw when present")
	}
}

func TestDecode_DirectJSON(t *testing.T) {
	d := &recordingDeserializer{}
	at := Decode(context.Background(),
		`{"name":"Wallet","publicKey":"abc123","relayServer":"relay.example.com"}`, d)
	if !at.OK() || at.Stage != StageDirectJSON {
		t.Fatalf("attempt = %+v, want direct json success", at)
	}
	if !IsPairingRequest(at.Value) {
		t.Fatalf("decoded value is not a pairing request: %v", at.Value)
	}
	if len(d.calls) != 0 {
		t.Fatalf("deserializer should not run when JSON parses")
	}
}

func TestDecode_ParseableMismatchIsTerminal(t *testing.T) {
	// all of these parse as JSON, so no fallback stage may run even though some are
	// valid base58 text that a compact decoder would accept the alphabet of
	for _, raw := range []string{`{"name":"only"}`, `123`, `null`, `"abc"`, `[1,2]`, ` true `} {
		d := &recordingDeserializer{}
		at := Decode(context.Background(), raw, d)
		if !at.OK() || at.Stage != StageDirectJSON {
			t.Fatalf("%q: attempt = %+v, want direct json", raw, at)
		}
		if IsPairingRequest(at.Value) {
			t.Fatalf("%q: unexpectedly a pairing request", raw)
		}
		if len(d.calls) != 0 {
			t.Fatalf("%q: fallback stage attempted", raw)
		}
	}
}

func TestDecode_URLWithTZIP10(t *testing.T) {
	data := compact(t, validRequest())
	raw := "https://wallet.example.com/?type=tzip10&data=" + url.QueryEscape(data)

	d := &recordingDeserializer{}
	at := Decode(context.Background(), raw, d)
	if !at.OK() || at.Stage != StageURL {
		t.Fatalf("attempt = %+v, want url success", at)
	}
	if !IsPairingRequest(at.Value) {
		t.Fatalf("value is not a pairing request: %v", at.Value)
	}
	if len(d.calls) != 1 || d.calls[0] == nil || *d.calls[0] != data {
		t.Fatalf("deserializer calls = %v", d.calls)
	}
}

func TestDecode_URLWithInvalidData(t *testing.T) {
	at := Decode(context.Background(), "https://example.com/?type=tzip10&data=INVALIDB64", serializer.New())
	if at.OK() || at.Stage != StageURL {
		t.Fatalf("attempt = %+v, want url failure", at)
	}
	if !errors.Is(at.Err, ErrDeserialize) || !errors.Is(at.Err, serializer.ErrAlphabet) {
		t.Fatalf("err = %v", at.Err)
	}
}

func TestDecode_URLWithAbsentData(t *testing.T) {
	d := &recordingDeserializer{}
	at := Decode(context.Background(), "https://example.com/?type=tzip10", d)
	if at.OK() {
		t.Fatalf("attempt = %+v, want failure", at)
	}
	if len(d.calls) != 1 || d.calls[0] != nil {
		t.Fatalf("absent data should reach the deserializer as nil, calls = %v", d.calls)
	}
	if !errors.Is(at.Err, serializer.ErrNilPayload) {
		t.Fatalf("err = %v, want ErrNilPayload", at.Err)
	}
}

func TestDecode_URLWithoutTZIP10IsTerminal(t *testing.T) {
	data := compact(t, validRequest())
	for _, raw := range []string{
		"https://example.com/?type=other&data=" + data,
		"https://example.com/?data=" + data,
		"tezos://pair",
	} {
		d := &recordingDeserializer{}
		at := Decode(context.Background(), raw, d)
		if at.OK() || !errors.Is(at.Err, ErrNotPairingLink) || at.Stage != StageURL {
			t.Fatalf("%q: attempt = %+v, want ErrNotPairingLink", raw, at)
		}
		if len(d.calls) != 0 {
			t.Fatalf("%q: deserializer should not run", raw)
		}
	}
}

func TestDecode_BareCompactPayload(t *testing.T) {
	raw := compact(t, validRequest())
	at := Decode(context.Background(), raw, serializer.New())
	if !at.OK() || at.Stage != StageCompact {
		t.Fatalf("attempt = %+v, want compact success", at)
	}
	if !IsPairingRequest(at.Value) {
		t.Fatalf("value is not a pairing request: %v", at.Value)
	}
}

func TestDecode_Garbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json at all", "{broken", "\x00\x01"} {
		at := Decode(context.Background(), raw, serializer.New())
		if at.OK() && IsPairingRequest(at.Value) {
			t.Fatalf("%q: unexpectedly decoded a pairing request", raw)
		}
		if at.OK() {
			t.Fatalf("%q: expected a failed attempt, got %+v", raw, at)
		}
	}
}

func TestDecode_NilDeserializer(t *testing.T) {
	at := Decode(context.Background(), "not json", nil)
	if at.OK() || !errors.Is(at.Err, ErrDeserialize) {
		t.Fatalf("attempt = %+v, want ErrDeserialize", at)
	}
}

func TestParseURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com/?type=tzip10", true},
		{"  https://example.com  ", true},
		{"\x01\thttps://example.com\x00", true},
		{"\u00a0https://example.com", false},
		{"tezos:pair", true},
		{"mailto:someone@example.com", true},
		{"https://", false},
		{"http:///path", false},
		{"not json at all", false},
		{"relative/path?type=tzip10", false},
		{"", false},
		{"3vQB7B6MrGQZaxCuFg4oh", false},
	}
	for _, tc := range cases {
		if _, got := ParseURL(tc.in); got != tc.want {
			t.Fatalf("ParseURL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPairingLink_RoundTrip(t *testing.T) {
	ctx := context.Background()
	req := PairingRequest{Name: "Wallet", PublicKey: "abc123", RelayServer: "relay.example.com", Version: "3"}

	link, err := PairingLink(ctx, "https://wallet.example.com/pair?lang=en", req, serializer.New())
	if err != nil {
		t.Fatalf("PairingLink err: %v", err)
	}
	if !strings.Contains(link, "type=tzip10") || !strings.Contains(link, "lang=en") {
		t.Fatalf("link = %q", link)
	}

	at := Decode(ctx, link, serializer.New())
	got, ok := FromValue(at.Value)
	if !at.OK() || !ok {
		t.Fatalf("link did not decode: %+v", at)
	}
	if got.Name != req.Name || got.PublicKey != req.PublicKey || got.Version != "3" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := PairingLink(ctx, "not a url", req, serializer.New()); err == nil {
		t.Fatalf("expected error for relative base")
	}
}

func TestStageString(t *testing.T) {
	for s, want := range map[Stage]string{
		StageDirectJSON: "direct_json",
		StageURL:        "url",
		StageCompact:    "compact",
		Stage(0):        "unknown",
	} {
		if s.String() != want {
			t.Fatalf("Stage(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
