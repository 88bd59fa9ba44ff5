package beacon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// LinkType is the query type marking a pairing link
const LinkType = "tzip10"

// Query parameter names of a pairing link
const (
	ParamType = "type"
	ParamData = "data"
)

// Stage identifies a decode attempt
type Stage uint8

const (
	// StageDirectJSON parses the payload as JSON text
	StageDirectJSON Stage = iota + 1

	// StageURL reads a compact payload from the data parameter of a tzip10 link
	StageURL

	// StageCompact reads the whole payload as a compact payload
	StageCompact
)

// String implements fmt.Stringer
func (s Stage) String() string {
	switch s {
	case StageDirectJSON:
		return "direct_json"
	case StageURL:
		return "url"
	case StageCompact:
		return "compact"
	default:
		return "unknown"
	}
}

var (
	// ErrNotJSON is returned by the direct stage when the payload does not parse
	ErrNotJSON = errors.New("beacon: payload is not JSON")

	// ErrNotPairingLink is returned for a URL that does not carry type=tzip10
	ErrNotPairingLink = errors.New("beacon: url is not a tzip10 link")

	// ErrDeserialize wraps failures of the compact payload deserializer
	ErrDeserialize = errors.New("beacon: compact payload")
)

// Deserializer turns a compact payload into a generic value
// A nil encoded pointer means the payload is absent
type Deserializer interface {
	Deserialize(ctx context.Context, encoded *string) (any, error)
}

// Attempt is the result of one decode stage
// Err set means the stage failed; otherwise Value holds the decoded candidate, which
// may or may not be a pairing request
type Attempt struct {
	Stage Stage
	Value any
	Err   error
}

// OK reports whether the stage produced a value
func (a Attempt) OK() bool { return a.Err == nil }

// Decode runs the attempt chain over raw and returns the terminal attempt
// A direct JSON parse that succeeds ends the chain; only a parse error moves on to
// the URL or compact stage, and that stage's result is final either way
func Decode(ctx context.Context, raw string, d Deserializer) Attempt {
	if direct := decodeJSON(raw); direct.OK() {
		return direct
	}
	return decodeFallback(ctx, raw, d)
}

func decodeJSON(raw string) Attempt {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Attempt{Stage: StageDirectJSON, Err: fmt.Errorf("%w: %v", ErrNotJSON, err)}
	}
	return Attempt{Stage: StageDirectJSON, Value: v}
}

func decodeFallback(ctx context.Context, raw string, d Deserializer) Attempt {
	u, ok := ParseURL(raw)
	if !ok {
		return deserialize(ctx, StageCompact, d, &raw)
	}

	q := u.Query()
	if q.Get(ParamType) != LinkType {
		return Attempt{Stage: StageURL, Err: ErrNotPairingLink}
	}
	var data *string
	if q.Has(ParamData) {
		s := q.Get(ParamData)
		data = &s
	}
	return deserialize(ctx, StageURL, d, data)
}

func deserialize(ctx context.Context, stage Stage, d Deserializer, encoded *string) Attempt {
	if d == nil {
		return Attempt{Stage: stage, Err: fmt.Errorf("%w: no deserializer", ErrDeserialize)}
	}
	v, err := d.Deserialize(ctx, encoded)
	if err != nil {
		return Attempt{Stage: stage, Err: fmt.Errorf("%w: %w", ErrDeserialize, err)}
	}
	return Attempt{Stage: stage, Value: v}
}

// special schemes require a host, as in the WHATWG URL standard
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// ParseURL reports whether s is an absolute URL: it must parse, carry a scheme and,
// for the special web schemes, a host. Leading and trailing C0 controls and spaces are
// ignored, other Unicode spaces are not. Relative references are not URLs here
func ParseURL(s string) (*url.URL, bool) {
	s = strings.TrimFunc(s, isC0OrSpace)
	if s == "" {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	if specialSchemes[strings.ToLower(u.Scheme)] && u.Host == "" {
		return nil, false
	}
	return u, true
}

func isC0OrSpace(r rune) bool { return r <= 0x20 }
