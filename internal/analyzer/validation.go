package analyzer

import (
	"fmt"
	"strings"
)

// Advisory is a non-fatal observation about an analysis result. Extraction
// tolerates ambiguity on purpose, so nothing here is ever an error: the
// advisor exists to make the accepted imprecision visible in CLI output.
type Advisory struct {
	Type    string // "duplicate_route", "anonymous_handler", "suspicious_path"
	Message string
}

// Validator inspects a finished AnalysisResult for advisories.
type Validator struct{}

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Review returns advisories for result, in a stable order.
func (v *Validator) Review(result *AnalysisResult) []Advisory {
	var advisories []Advisory

	counts := make(map[string]int)
	var order []string
	for _, r := range result.Routes {
		key := r.Method + " " + r.Path
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	for _, key := range order {
		if n := counts[key]; n > 1 {
			advisories = append(advisories, Advisory{
				Type:    "duplicate_route",
				Message: fmt.Sprintf("%s extracted %d times (expected when both extraction passes match)", key, n),
			})
		}
	}

	anonymous := 0
	for _, r := range result.Routes {
		if r.Handler == "anonymous" {
			anonymous++
		}
		if r.Path != "" && !strings.HasPrefix(r.Path, "/") {
			advisories = append(advisories, Advisory{
				Type:    "suspicious_path",
				Message: fmt.Sprintf("route path %q does not start with '/'", r.Path),
			})
		}
	}
	if anonymous > 0 {
		advisories = append(advisories, Advisory{
			Type:    "anonymous_handler",
			Message: fmt.Sprintf("%d route(s) have unresolved handler names", anonymous),
		})
	}

	return advisories
}
