// Package grouper partitions extracted routes into named documentation
// modules. Strategies are an explicit ordered list tried in sequence; the
// first one that yields any module wins outright, so precedence is visible
// in one place instead of nested conditionals.
package grouper

import (
	"strings"

	"github.com/docweave/docweave/internal/analyzer"
)

// roundRobinBucket is how many consecutive routes share one fallback module.
const roundRobinBucket = 3

// fallbackModule collects routes no other rule can place.
const fallbackModule = "app"

// Grouper partitions routes into documentation modules.
type Grouper struct{}

// New creates a Grouper.
func New() *Grouper {
	return &Grouper{}
}

// input carries everything a strategy may consult.
type input struct {
	routes      []analyzer.Route
	controllers []analyzer.Controller
	// serviceModules lists service-derived module names in discovery order;
	// serviceBases maps each to the service's suffix-stripped base name.
	serviceModules []string
	serviceBases   map[string]string
}

// strategy tries to produce a complete grouping. A nil map means "no
// result, try the next strategy".
type strategy func(in *input) map[string][]analyzer.Route

// Group partitions routes into module name → ordered routes.
//
// Controllers dominate: when any controller owns routes, each controller
// maps wholesale to its derived module and the fallback strategies never
// run; routes not owned by a controller are simply absent from the
// grouped output. Only a controller-less surface falls through to the
// per-route fallback chain.
func (g *Grouper) Group(routes []analyzer.Route, services []analyzer.Service, controllers []analyzer.Controller) map[string][]analyzer.Route {
	in := &input{
		routes:       routes,
		controllers:  controllers,
		serviceBases: map[string]string{},
	}
	for _, svc := range services {
		module, ok := DeriveModuleName(svc.Name)
		if !ok {
			continue
		}
		if _, exists := in.serviceBases[module]; !exists {
			in.serviceModules = append(in.serviceModules, module)
			in.serviceBases[module] = StripSuffix(svc.Name)
		}
	}

	for _, s := range []strategy{controllerStrategy, fallbackStrategy} {
		if modules := s(in); len(modules) > 0 {
			return sanitizeKeys(modules)
		}
	}
	return map[string][]analyzer.Route{}
}

// controllerStrategy assigns every controller's routes to the module
// derived from the controller's name.
func controllerStrategy(in *input) map[string][]analyzer.Route {
	modules := map[string][]analyzer.Route{}
	for _, c := range in.controllers {
		if len(c.Routes) == 0 {
			continue
		}
		module, ok := DeriveModuleName(c.Name)
		if !ok {
			continue
		}
		modules[module] = append(modules[module], c.Routes...)
	}
	return modules
}

// fallbackStrategy places each route in original order using, in turn:
// handler-to-service matching, the root-path rule, the first usable path
// segment, then round-robin over service-derived modules.
func fallbackStrategy(in *input) map[string][]analyzer.Route {
	modules := map[string][]analyzer.Route{}
	for pos, route := range in.routes {
		module := matchServiceModule(in, route.Handler)
		if module == "" {
			module = pathModule(route.Path)
		}
		if module == "" {
			module = roundRobinModule(in, pos)
		}
		modules[module] = append(modules[module], route)
	}
	return modules
}

// matchServiceModule matches the route's handler name case-insensitively
// against each remembered service base name ("getUsers" matches base
// "Users").
func matchServiceModule(in *input, handler string) string {
	if handler == "" || handler == "anonymous" {
		return ""
	}
	lower := strings.ToLower(handler)
	for _, module := range in.serviceModules {
		base := strings.ToLower(in.serviceBases[module])
		if base != "" && strings.Contains(lower, base) {
			return module
		}
	}
	return ""
}

// pathModule derives a module from the route path: the root path maps to
// the app module, otherwise the first non-parametric segment is used.
func pathModule(path string) string {
	if path == "/" || path == "" {
		return fallbackModule
	}
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" || strings.HasPrefix(segment, ":") {
			continue
		}
		return strings.ToLower(segment)
	}
	return ""
}

// roundRobinModule buckets the route by its position in the original list:
// every roundRobinBucket consecutive routes share the next service-derived
// module, overflow lands in the app module.
func roundRobinModule(in *input, pos int) string {
	idx := pos / roundRobinBucket
	if idx < len(in.serviceModules) {
		return in.serviceModules[idx]
	}
	return fallbackModule
}

func sanitizeKeys(modules map[string][]analyzer.Route) map[string][]analyzer.Route {
	out := make(map[string][]analyzer.Route, len(modules))
	for name, routes := range modules {
		key := Sanitize(name)
		out[key] = append(out[key], routes...)
	}
	return out
}
