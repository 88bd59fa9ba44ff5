// Command beaconpair-decode runs the pairing handler offline against a payload
// or builds a tzip10 pairing link
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"beaconpair/internal/core/beacon"
	"beaconpair/internal/core/beacon/serializer"
	"beaconpair/internal/core/iac"
	psvc "beaconpair/internal/services/pairing/service"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// dryRun is a registrar that is always connected and keeps what it was handed
type dryRun struct {
	got *beacon.PairingRequest
}

func (d *dryRun) Connected(ctx context.Context) error { return ctx.Err() }

func (d *dryRun) AddPeer(_ context.Context, req beacon.PairingRequest) error {
	d.got = &req
	return nil
}

type report struct {
	Status   iac.Status     `json:"status"`
	Handler  string         `json:"handler,omitempty"`
	Request  map[string]any `json:"request,omitempty"`
	SenderID string         `json:"sender_id,omitempty"`
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("beaconpair-decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fPayload = fs.String("payload", "", "payload to decode; read from stdin when empty")
		fEncode  = fs.Bool("encode", false, "build a pairing link instead of decoding")
		fBase    = fs.String("base", "tezos://", "link base for -encode")
		fName    = fs.String("name", "", "peer name for -encode")
		fKey     = fs.String("public-key", "", "peer public key for -encode")
		fRelay   = fs.String("relay", "", "relay server for -encode")
		fVersion = fs.String("version", "", "protocol version for -encode (optional)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	codec := serializer.New()

	if *fEncode {
		req := beacon.PairingRequest{Name: *fName, PublicKey: *fKey, RelayServer: *fRelay, Version: *fVersion}
		if req.Name == "" || req.PublicKey == "" || req.RelayServer == "" {
			fmt.Fprintln(stderr, "-encode needs -name, -public-key and -relay")
			return 2
		}
		link, err := beacon.PairingLink(ctx, *fBase, req, codec)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, link)
		return 0
	}

	payload := *fPayload
	if payload == "" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintln(stderr, "read stdin:", err)
			return 1
		}
		payload = strings.TrimSpace(string(b))
	}
	if payload == "" {
		fmt.Fprintln(stderr, errors.New("no payload given"))
		return 2
	}

	reg := &dryRun{}
	h := psvc.NewBeaconHandler(reg, codec, psvc.HandlerOptions{})
	out := iac.NewDispatcher(h).Dispatch(ctx, iac.Text(payload))

	rep := report{Status: out.Status, Handler: out.Handler}
	if reg.got != nil {
		rep.Request = reg.got.Value()
		if sid, err := beacon.SenderID(reg.got.PublicKey); err == nil {
			rep.SenderID = sid
		}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if out.Status != iac.StatusSuccess {
		return 1
	}
	return 0
}
