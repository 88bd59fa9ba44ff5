package service

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"sync"
	"testing"
	"time"

	"beaconpair/internal/core/beacon"
	"beaconpair/internal/core/beacon/serializer"
	"beaconpair/internal/core/iac"
	kit "beaconpair/internal/platform/testkit"
)

// fakeRegistrar records registrations and can be told to fail or block
type fakeRegistrar struct {
	mu         sync.Mutex
	connectErr error
	addErr     error
	block      bool
	connected  int
	added      []beacon.PairingRequest
}

func (f *fakeRegistrar) Connected(ctx context.Context) error {
	f.mu.Lock()
	f.connected++
	block, err := f.block, f.connectErr
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeRegistrar) AddPeer(_ context.Context, req beacon.PairingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, req)
	return nil
}

func (f *fakeRegistrar) adds() []beacon.PairingRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]beacon.PairingRequest(nil), f.added...)
}

// countingCodec counts deserializer calls on top of the real codec
type countingCodec struct {
	serializer.Codec
	calls int
}

func (c *countingCodec) Deserialize(ctx context.Context, encoded *string) (any, error) {
	c.calls++
	return c.Codec.Deserialize(ctx, encoded)
}

type panickingCodec struct{}

func (panickingCodec) Deserialize(context.Context, *string) (any, error) { panic("codec blew up") }

func compactOf(t *testing.T, v any) string {
	t.Helper()
	s, err := serializer.New().Serialize(context.Background(), v)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return s
}

func wallet() map[string]any {
	return map[string]any{
		"name":        "Wallet",
		"publicKey":   "abc123",
		"relayServer": "relay.example.com",
	}
}

func newHandler(reg *fakeRegistrar, codec beacon.Deserializer) *BeaconHandler {
	return NewBeaconHandler(reg, codec, HandlerOptions{})
}

func TestReceive_DirectJSONRegistersOnce(t *testing.T) {
	reg := &fakeRegistrar{}
	codec := &countingCodec{}
	h := newHandler(reg, codec)

	in := `{"name":"Wallet","publicKey":"abc123","relayServer":"relay.example.com"}`
	if st := h.Receive(context.Background(), iac.Text(in)); st != iac.StatusSuccess {
		t.Fatalf("status = %v, want success", st)
	}

	adds := reg.adds()
	if len(adds) != 1 {
		t.Fatalf("AddPeer calls = %d, want 1", len(adds))
	}
	if !reflect.DeepEqual(adds[0].Raw, wallet()) {
		t.Fatalf("registered object = %#v, want %#v", adds[0].Raw, wallet())
	}
	if adds[0].Name != "Wallet" || adds[0].PublicKey != "abc123" || adds[0].RelayServer != "relay.example.com" {
		t.Fatalf("typed fields = %+v", adds[0])
	}
	if reg.connected != 1 {
		t.Fatalf("Connected calls = %d, want 1 before registration", reg.connected)
	}
	if codec.calls != 0 {
		t.Fatalf("direct JSON must not reach the deserializer")
	}
}

func TestReceive_ParseableMismatchIsTerminal(t *testing.T) {
	inputs := []string{
		`{"name":"Wallet","publicKey":"abc123"}`,
		`{"name":"Wallet","relayServer":"relay"}`,
		`{"publicKey":"abc123","relayServer":"relay"}`,
		`{"name":1,"publicKey":"abc123","relayServer":"relay"}`,
		`{}`,
		`123`,
		`null`,
		`"tezos://?type=tzip10&data=x"`,
		`[{"name":"a","publicKey":"b","relayServer":"c"}]`,
	}
	for _, in := range inputs {
		reg := &fakeRegistrar{}
		codec := &countingCodec{}
		h := newHandler(reg, codec)

		if st := h.Receive(context.Background(), iac.Text(in)); st != iac.StatusUnsupported {
			t.Fatalf("%s: status = %v, want unsupported", in, st)
		}
		if len(reg.adds()) != 0 || reg.connected != 0 {
			t.Fatalf("%s: registrar must not be touched", in)
		}
		if codec.calls != 0 {
			t.Fatalf("%s: no fallback stage may run after a successful parse", in)
		}
	}
}

func TestReceive_PairingLink(t *testing.T) {
	reg := &fakeRegistrar{}
	h := newHandler(reg, serializer.New())

	data := compactOf(t, wallet())
	link := "tezos://?type=tzip10&data=" + url.QueryEscape(data)
	if st := h.Receive(context.Background(), iac.Text(link)); st != iac.StatusSuccess {
		t.Fatalf("status = %v, want success", st)
	}
	if adds := reg.adds(); len(adds) != 1 || !reflect.DeepEqual(adds[0].Raw, wallet()) {
		t.Fatalf("adds = %+v", adds)
	}
}

func TestReceive_PairingLinkFailures(t *testing.T) {
	notPairing := compactOf(t, map[string]any{"name": "only"})
	cases := []struct {
		name      string
		in        string
		wantCalls int
	}{
		{"invalid data", "https://example.com/?type=tzip10&data=INVALIDB64", 1},
		{"absent data", "https://example.com/?type=tzip10", 1},
		{"decodes to mismatch", "https://example.com/?type=tzip10&data=" + notPairing, 1},
		{"other type", "https://example.com/?type=other&data=" + compactOf(t, wallet()), 0},
		{"no type", "https://example.com/?data=" + compactOf(t, wallet()), 0},
	}
	for _, tc := range cases {
		reg := &fakeRegistrar{}
		codec := &countingCodec{}
		h := newHandler(reg, codec)

		if st := h.Receive(context.Background(), iac.Text(tc.in)); st != iac.StatusUnsupported {
			t.Fatalf("%s: status = %v, want unsupported", tc.name, st)
		}
		if codec.calls != tc.wantCalls {
			t.Fatalf("%s: deserializer calls = %d, want %d", tc.name, codec.calls, tc.wantCalls)
		}
		if len(reg.adds()) != 0 {
			t.Fatalf("%s: nothing may be registered", tc.name)
		}
	}
}

func TestReceive_BareCompact(t *testing.T) {
	reg := &fakeRegistrar{}
	h := newHandler(reg, serializer.New())

	if st := h.Receive(context.Background(), iac.Text(compactOf(t, wallet()))); st != iac.StatusSuccess {
		t.Fatalf("status = %v, want success", st)
	}
	if len(reg.adds()) != 1 {
		t.Fatalf("expected one registration")
	}
}

func TestReceive_GarbageIsUnsupported(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t", "not json at all", "{broken", "0OIl", "%%%"} {
		reg := &fakeRegistrar{}
		h := newHandler(reg, serializer.New())
		kit.MustNotPanic(t, func() {
			if st := h.Receive(context.Background(), iac.Text(in)); st != iac.StatusUnsupported {
				t.Fatalf("%q: status = %v, want unsupported", in, st)
			}
		})
		if len(reg.adds()) != 0 {
			t.Fatalf("%q: nothing may be registered", in)
		}
	}
}

func TestReceive_OnlyFirstChunkCounts(t *testing.T) {
	valid := `{"name":"Wallet","publicKey":"abc123","relayServer":"relay.example.com"}`

	reg := &fakeRegistrar{}
	h := newHandler(reg, serializer.New())
	if st := h.Receive(context.Background(), iac.Chunks(valid, "trailing", "ignored")); st != iac.StatusSuccess {
		t.Fatalf("first chunk valid: status = %v", st)
	}
	if st := h.Receive(context.Background(), iac.Chunks("garbage", valid)); st != iac.StatusUnsupported {
		t.Fatalf("valid second chunk must be ignored: status = %v", st)
	}
	if st := h.Receive(context.Background(), iac.Chunks()); st != iac.StatusUnsupported {
		t.Fatalf("empty chunks: status = %v", st)
	}
	if len(reg.adds()) != 1 {
		t.Fatalf("registrations = %d, want 1", len(reg.adds()))
	}
}

func TestReceive_RegistrarErrorsCollapse(t *testing.T) {
	valid := `{"name":"Wallet","publicKey":"abc123","relayServer":"relay.example.com"}`

	reg := &fakeRegistrar{connectErr: errors.New("offline")}
	h := newHandler(reg, serializer.New())
	if st := h.Receive(context.Background(), iac.Text(valid)); st != iac.StatusUnsupported {
		t.Fatalf("connect error: status = %v", st)
	}
	if len(reg.adds()) != 0 {
		t.Fatalf("AddPeer must not run when the client is not connected")
	}

	reg = &fakeRegistrar{addErr: errors.New("rejected")}
	h = newHandler(reg, serializer.New())
	if st := h.Receive(context.Background(), iac.Text(valid)); st != iac.StatusUnsupported {
		t.Fatalf("add error: status = %v", st)
	}
}

func TestReceive_ReadyTimeout(t *testing.T) {
	valid := `{"name":"Wallet","publicKey":"abc123","relayServer":"relay.example.com"}`
	reg := &fakeRegistrar{block: true}
	h := NewBeaconHandler(reg, serializer.New(), HandlerOptions{ReadyTimeout: 20 * time.Millisecond})

	done := make(chan iac.Status, 1)
	go func() { done <- h.Receive(context.Background(), iac.Text(valid)) }()
	select {
	case st := <-done:
		if st != iac.StatusUnsupported {
			t.Fatalf("status = %v, want unsupported", st)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("ready timeout did not bound the wait")
	}
}

func TestReceive_UnboundedWaitEndsWithContext(t *testing.T) {
	valid := `{"name":"Wallet","publicKey":"abc123","relayServer":"relay.example.com"}`
	reg := &fakeRegistrar{block: true}
	h := newHandler(reg, serializer.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan iac.Status, 1)
	go func() { done <- h.Receive(ctx, iac.Text(valid)) }()

	select {
	case <-done:
		t.Fatalf("receive returned before the client connected")
	case <-time.After(30 * time.Millisecond):
	}
	cancel()
	if st := <-done; st != iac.StatusUnsupported {
		t.Fatalf("status = %v, want unsupported", st)
	}
}

func TestReceive_RecoversFromPanickingCodec(t *testing.T) {
	h := newHandler(&fakeRegistrar{}, panickingCodec{})
	kit.MustNotPanic(t, func() {
		if st := h.Receive(context.Background(), iac.Text("not json")); st != iac.StatusUnsupported {
			t.Fatalf("status = %v, want unsupported", st)
		}
	})
}

func TestBeaconHandler_Stubs(t *testing.T) {
	ctx := context.Background()
	h := newHandler(&fakeRegistrar{}, serializer.New())

	if h.Name() != HandlerName {
		t.Fatalf("Name = %q", h.Name())
	}
	if h.Progress(ctx) != 100 || h.Result(ctx) != nil || !h.HandleComplete(ctx) {
		t.Fatalf("lifecycle stubs changed")
	}
	kit.MustNotPanic(t, func() { h.Reset(ctx) })

	named := NewBeaconHandler(&fakeRegistrar{}, serializer.New(), HandlerOptions{Name: "Custom"})
	if named.Name() != "Custom" {
		t.Fatalf("Name override = %q", named.Name())
	}
}

func TestNewBeaconHandler_RequiresCollaborators(t *testing.T) {
	kit.MustPanic(t, func() { NewBeaconHandler(nil, serializer.New(), HandlerOptions{}) })
	kit.MustPanic(t, func() { NewBeaconHandler(&fakeRegistrar{}, nil, HandlerOptions{}) })
}

var _ iac.Handler = (*BeaconHandler)(nil)
