package solve

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"screen-solve/api/internal/solve/types"
	"screen-solve/api/internal/util"
)

// DefaultAnswer is used when the model reply has no answer field.
const DefaultAnswer = "No answer"

// ParseReply turns raw model text into a SolveResult. Any failure is a
// KindMalformedOutput error.
func ParseReply(raw string) (types.SolveResult, error) {
	txt := util.StripCodeFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(txt), &fields); err != nil {
		return types.SolveResult{}, malformedOutput(fmt.Errorf("parse reply: %w", err))
	}
	if fields == nil {
		// literal null
		return types.SolveResult{}, malformedOutput(errors.New("parse reply: not a JSON object"))
	}

	conf, err := coerceConfidence(fields["confidence"])
	if err != nil {
		return types.SolveResult{}, malformedOutput(err)
	}

	return types.SolveResult{
		Answer:     coerceText(fields["answer"], DefaultAnswer),
		Confidence: Clamp(conf),
		Rationale:  coerceText(fields["rationale"], ""),
	}, nil
}

// Clamp truncates v into [0, 1].
func Clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// coerceText renders a JSON value as text: strings as-is, scalars and
// containers as their compact JSON form. Missing and null yield def.
func coerceText(raw json.RawMessage, def string) string {
	if isNull(raw) {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}

// coerceConfidence accepts numbers, numeric strings and booleans.
// A missing field is 0; null, NaN, containers and other strings are errors.
func coerceConfidence(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	v := bytes.TrimSpace(raw)
	var (
		f   float64
		err error
	)
	switch {
	case bytes.Equal(v, []byte("null")):
		return 0, errors.New("confidence is null")
	case bytes.Equal(v, []byte("true")):
		return 1, nil
	case bytes.Equal(v, []byte("false")):
		return 0, nil
	case v[0] == '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, fmt.Errorf("confidence: %w", err)
		}
		f, err = parseFloat(strings.TrimSpace(s))
	case v[0] == '-' || (v[0] >= '0' && v[0] <= '9'):
		f, err = parseFloat(string(v))
	default:
		return 0, fmt.Errorf("confidence is not a number: %s", util.Truncate(string(v), 64))
	}
	if err != nil {
		return 0, fmt.Errorf("confidence is not a number: %w", err)
	}
	if math.IsNaN(f) {
		return 0, errors.New("confidence is NaN")
	}
	return f, nil
}

// parseFloat tolerates overflow: ±Inf is clamped later like any other value.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}
