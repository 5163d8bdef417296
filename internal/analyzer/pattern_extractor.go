package analyzer

import (
	"regexp"
	"strings"
)

// PatternExtractor finds route registrations that are not expressed as class
// members: direct calls like app.get('/users', handler) and bare verb
// decorators. It works on raw text with a fixed, ordered pattern list. Each
// pattern re-scans the whole file from the start, so a registration that
// satisfies more than one pattern is reported more than once; duplicates
// are the assembler's accepted trade-off, not an error.
type PatternExtractor struct {
	patterns []routePattern
}

type routePattern struct {
	re *regexp.Regexp
	// frameworkFor maps the matched receiver token to a framework label.
	// A nil map means the label is fixed.
	frameworkFor map[string]Framework
	framework    Framework
	callStyle    bool
}

var (
	// Receiver-call registrations: app/router/fastify.<verb>('<path>', ...).
	// A plain "router" receiver with no other context is labeled express by
	// convention; that imprecision is accepted.
	callRouteRe = regexp.MustCompile(
		`(app|router|fastify)\.(get|post|put|delete|patch)\s*\(\s*` +
			"[`'\"]([^`'\"]*)[`'\"]" + `\s*,\s*([^)]*)`)

	// Bare verb decorators with a string-literal path.
	decoratorRouteRe = regexp.MustCompile(
		`@(Get|Post|Put|Delete|Patch)\s*\(\s*` + "[`'\"]([^`'\"]*)[`'\"]" + `\s*\)`)

	// Handler-name resolution, tried in order against the text following a
	// match: arrow function bound by assignment, named function declaration,
	// async named function.
	handlerConstRe    = regexp.MustCompile(`const\s+([A-Za-z_$][\w$]*)\s*=`)
	handlerFunctionRe = regexp.MustCompile(`function\s+([A-Za-z_$][\w$]*)`)
	handlerAsyncRe    = regexp.MustCompile(`async\s+([A-Za-z_$][\w$]*)`)
)

// NewPatternExtractor builds the extractor with its fixed pattern list.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{
		patterns: []routePattern{
			{
				re: callRouteRe,
				frameworkFor: map[string]Framework{
					"app":     FrameworkExpress,
					"router":  FrameworkExpress,
					"fastify": FrameworkFastify,
				},
				callStyle: true,
			},
			{
				re:        decoratorRouteRe,
				framework: FrameworkNest,
			},
		},
	}
}

// Extract returns every route the pattern list finds in src. It never
// fails: a non-matching pattern contributes zero routes.
func (e *PatternExtractor) Extract(src string) []Route {
	var routes []Route
	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(src, -1) {
			routes = append(routes, e.buildRoute(src, p, m))
		}
	}
	return routes
}

func (e *PatternExtractor) buildRoute(src string, p routePattern, m []int) Route {
	route := Route{
		Middleware: e.extractMiddleware(src, m),
		Framework:  p.framework,
	}
	if p.callStyle {
		receiver := submatch(src, m, 1)
		route.Method = strings.ToUpper(submatch(src, m, 2))
		route.Path = submatch(src, m, 3)
		route.Handler = resolveHandlerName(submatch(src, m, 4))
		route.Framework = p.frameworkFor[receiver]
		// Call-style matches always get the conventional (req, res, next?)
		// shape; the real handler signature is not inspected.
		route.Parameters = []Parameter{
			{Name: "req", Type: "Request"},
			{Name: "res", Type: "Response"},
			{Name: "next", Type: "NextFunction", Optional: true},
		}
	} else {
		route.Method = strings.ToUpper(submatch(src, m, 1))
		route.Path = submatch(src, m, 2)
		route.Handler = resolveHandlerName(src[m[1]:])
	}
	return route
}

// resolveHandlerName applies the fixed resolution chain to the text that
// follows a route match. Anything the chain does not recognize, including
// a bare identifier reference, resolves to "anonymous".
func resolveHandlerName(text string) string {
	for _, re := range []*regexp.Regexp{handlerConstRe, handlerFunctionRe, handlerAsyncRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return "anonymous"
}

// extractMiddleware is a stub: middleware chains are not yet recovered from
// call sites. TODO: walk the argument list between path and handler.
func (e *PatternExtractor) extractMiddleware(string, []int) []string {
	return []string{}
}
