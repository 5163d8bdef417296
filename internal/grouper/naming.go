package grouper

import (
	"regexp"
	"strings"
)

// moduleSuffixes are stripped (case-insensitively) from the end of a class
// name before it becomes a module name.
var moduleSuffixes = []string{"Service", "Controller", "Dto", "Entity", "Model", "Type", "Interface"}

var invalidModuleChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

// DeriveModuleName turns a class name like "UsersService" or
// "OrderController" into a documentation-module name ("users", "orders").
// One known suffix is stripped, the remainder lower-cased and pluralized.
// Empty names yield ("", false).
func DeriveModuleName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	base := StripSuffix(name)
	if base == "" {
		return "", false
	}
	return pluralize(strings.ToLower(base)), true
}

// StripSuffix removes one trailing module suffix from name, if present.
func StripSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range moduleSuffixes {
		s := strings.ToLower(suffix)
		if strings.HasSuffix(lower, s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}

func pluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "y"):
		return strings.TrimSuffix(s, "y") + "ies"
	case strings.HasSuffix(s, "s"):
		return s
	default:
		return s + "s"
	}
}

// Sanitize replaces every character outside [a-zA-Z0-9-_] with an
// underscore so module names are safe as file and map keys.
func Sanitize(name string) string {
	return invalidModuleChars.ReplaceAllString(name, "_")
}
