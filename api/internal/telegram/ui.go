package telegram

import (
	"fmt"
	"math"
	"strings"

	"screen-solve/api/internal/solve"
	"screen-solve/api/internal/solve/types"
	"screen-solve/api/internal/util"
)

func formatResult(res types.SolveResult) string {
	var b strings.Builder
	b.WriteString("Answer: ")
	b.WriteString(res.Answer)
	fmt.Fprintf(&b, "\nConfidence: %d%%", int(math.Round(res.Confidence*100)))
	if s := strings.TrimSpace(res.Rationale); s != "" {
		b.WriteString("\n\n")
		b.WriteString(s)
	}
	return b.String()
}

func formatError(err error) string {
	switch solve.KindOf(err) {
	case solve.KindInvalidInput:
		return "That does not look like an image. Send a photo or an image file."
	case solve.KindMalformedOutput:
		return "The model returned an unreadable answer, try again."
	default:
		return "Solver error: " + util.Truncate(err.Error(), 300)
	}
}

func formatHealth(engine, model string, keyConfigured bool) string {
	state := "missing"
	if keyConfigured {
		state = "configured"
	}
	return fmt.Sprintf("OK\nEngine: %s (%s)\nAPI key: %s", engine, model, state)
}
