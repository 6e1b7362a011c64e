// ABOUTME: Vector codec parsing embeddings stored in heterogeneous formats
// ABOUTME: Ordered parser chain: native slice, brace list, bracket list, JSON, literal tuple
package vector

import (
	"encoding/json"
	"strconv"
	"strings"
)

// textParsers is the ordered chain of textual embedding parsers. Specific
// formats come before generic parsers: a generic parse can silently accept
// ambiguous input that a specific parser would reject.
var textParsers = []func(string) ([]float64, error){
	parseBraceList,
	parseBracketList,
	parseJSON,
	parseLiteralTuple,
}

// Decode converts a storage-layer value of unknown concrete representation
// into a numeric vector. Returns nil when the value is absent or no parser
// accepts it; it never panics. Dimension validation is the caller's job.
func Decode(raw any) []float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case []float64:
		return v
	case []float32:
		out := make([]float64, len(v))
		for i, f := range v {
			out[i] = float64(f)
		}
		return out
	case []any:
		return Flatten(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, parse := range textParsers {
			if vec, err := parse(s); err == nil {
				return vec
			}
		}
		return nil
	case []byte:
		return Decode(string(v))
	}
	return nil
}

// Flatten normalizes a possibly nested/batched decoded value into a flat
// vector. Returns nil when any element is not numeric.
func Flatten(v []any) []float64 {
	out := make([]float64, 0, len(v))
	for _, elem := range v {
		switch e := elem.(type) {
		case float64:
			out = append(out, e)
		case json.Number:
			f, err := e.Float64()
			if err != nil {
				return nil
			}
			out = append(out, f)
		case int:
			out = append(out, float64(e))
		case []any:
			inner := Flatten(e)
			if inner == nil {
				return nil
			}
			out = append(out, inner...)
		default:
			return nil
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseBraceList parses the PostgreSQL array text format {v1,v2,...}.
func parseBraceList(s string) ([]float64, error) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, errNotThisFormat
	}
	return parseCommaList(s[1 : len(s)-1])
}

// parseBracketList parses a flat JSON-like list [v1,v2,...] without going
// through a full JSON decode.
func parseBracketList(s string) ([]float64, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, errNotThisFormat
	}
	return parseCommaList(s[1 : len(s)-1])
}

// parseJSON handles anything json.Unmarshal accepts, including nested
// batched shapes like [[v1,v2,...]].
func parseJSON(s string) ([]float64, error) {
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, err
	}
	switch d := decoded.(type) {
	case []any:
		if vec := Flatten(d); vec != nil {
			return vec, nil
		}
	case float64:
		return []float64{d}, nil
	}
	return nil, errNotThisFormat
}

// parseLiteralTuple parses language-literal tuples like (v1, v2, ...),
// the last resort for drivers that render sequences with parentheses.
func parseLiteralTuple(s string) ([]float64, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, errNotThisFormat
	}
	return parseCommaList(s[1 : len(s)-1])
}

func parseCommaList(body string) ([]float64, error) {
	parts := strings.Split(body, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, errNotThisFormat
	}
	return out, nil
}

var errNotThisFormat = &formatError{}

type formatError struct{}

func (*formatError) Error() string { return "value does not match this embedding format" }
