package serializer

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
)

func ptr(s string) *string { return &s }

func TestSerializeDeserialize_Object(t *testing.T) {
	ctx := context.Background()
	c := New()

	in := map[string]any{
		"name":        "Wallet",
		"publicKey":   "abc123",
		"relayServer": "relay.example.com",
		"version":     "2",
	}
	enc, err := c.Serialize(ctx, in)
	if err != nil {
		t.Fatalf("Serialize err: %v", err)
	}
	if strings.ContainsAny(enc, "0OIl+/=") {
		t.Fatalf("encoded payload contains non base58 characters: %q", enc)
	}

	out, err := c.Deserialize(ctx, &enc)
	if err != nil {
		t.Fatalf("Deserialize err: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Deserialize type = %T, want map", out)
	}
	for k, v := range in {
		if m[k] != v {
			t.Fatalf("field %s = %v, want %v", k, m[k], v)
		}
	}
}

func TestDecode_KnownVector(t *testing.T) {
	// a bitcoin P2PKH address is base58check over version byte 0x00 and a hash160
	body, err := Decode("1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2")
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if got := hex.EncodeToString(body); got != "0077bff20c60e522dfaa3350c39b030a5d004e839a" {
		t.Fatalf("Decode = %s", got)
	}
	if got := Encode(body); got != "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2" {
		t.Fatalf("Encode = %s", got)
	}
}

func TestSerialize_KnownPayload(t *testing.T) {
	const want = "8L6yTJZH9X4XjFVe4Pj85N88Z6nUZMepXcGH2n5hsL2vhKUxdoDds35ERw4ZeMsLyTEs4Z8zs9Sk2pLYFeEcW"
	in := map[string]any{"name": "<Kukai & co>", "publicKey": "aa", "relayServer": "r"}

	got, err := New().Serialize(context.Background(), in)
	if err != nil {
		t.Fatalf("Serialize err: %v", err)
	}
	if got != want {
		t.Fatalf("Serialize = %s, want %s", got, want)
	}
	body, err := Decode(got)
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if string(body) != `{"name":"<Kukai & co>","publicKey":"aa","relayServer":"r"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestDeserialize_Errors(t *testing.T) {
	ctx := context.Background()
	c := New()

	good := Encode([]byte(`{"a":1}`))
	tampered := []byte(good)
	// flip the last character to another alphabet member so only the checksum breaks
	if tampered[len(tampered)-1] == '2' {
		tampered[len(tampered)-1] = '3'
	} else {
		tampered[len(tampered)-1] = '2'
	}

	cases := []struct {
		name string
		in   *string
		want error
	}{
		{"nil", nil, ErrNilPayload},
		{"empty", ptr(""), ErrAlphabet},
		{"bad alphabet", ptr("not json at all"), ErrAlphabet},
		{"zero char", ptr("0abc"), ErrAlphabet},
		{"too short", ptr(base58.Encode([]byte{1, 2})), ErrTooShort},
		{"checksum", ptr(string(tampered)), ErrChecksum},
		{"not json", ptr(Encode([]byte("hello"))), ErrJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := c.Deserialize(ctx, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if v != nil {
				t.Fatalf("value = %v, want nil", v)
			}
		})
	}
}

func TestDeserialize_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	enc := Encode([]byte(`{}`))
	if _, err := New().Deserialize(ctx, &enc); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := New().Serialize(ctx, map[string]any{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Serialize err = %v, want context.Canceled", err)
	}
}

func TestSerialize_Unmarshalable(t *testing.T) {
	if _, err := New().Serialize(context.Background(), make(chan int)); err == nil {
		t.Fatalf("expected marshal error")
	}
}

func TestEncodeDecode_Bytes(t *testing.T) {
	raw := []byte("pairing")
	got, err := Decode(Encode(raw))
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if string(got) != "pairing" {
		t.Fatalf("Decode = %q", got)
	}
}
