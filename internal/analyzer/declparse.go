package analyzer

import (
	"regexp"
	"strings"
)

// Decl types model the subset of a TypeScript source file the extractors
// care about: classes with decorators and members, interfaces, type aliases
// and enums. They are plain data; classification happens in the extractor.

// Decorator is an annotation attached to a class, method or parameter,
// inspected by name only.
type Decorator struct {
	Name string
	Args []string // raw argument texts, string literals unquoted
}

// ParamDecl is a declared parameter.
type ParamDecl struct {
	Name       string
	Type       string // "any" when no annotation is present
	Optional   bool
	Decorators []Decorator
}

// MethodDecl is a declared class method.
type MethodDecl struct {
	Name       string
	Decorators []Decorator
	Params     []ParamDecl
	ReturnType string // empty when not annotated
	Visibility string // "", "public", "private" or "protected"
}

// PropDecl is a declared interface property.
type PropDecl struct {
	Name     string
	Type     string
	Optional bool
}

// ClassDecl is a declared class with its decorators and methods.
type ClassDecl struct {
	Name       string
	Decorators []Decorator
	Methods    []MethodDecl
}

// InterfaceDecl is a declared interface.
type InterfaceDecl struct {
	Name  string
	Props []PropDecl
}

// EnumDecl is a declared enumeration.
type EnumDecl struct {
	Name    string
	Members []string
}

// FileDecls is the parsed declaration view of one source file.
type FileDecls struct {
	Classes    []ClassDecl
	Interfaces []InterfaceDecl
	Aliases    []string
	Enums      []EnumDecl
}

// HasDecorator reports whether the class carries a class-level decorator
// with exactly the given name.
func (c *ClassDecl) HasDecorator(name string) bool {
	for _, d := range c.Decorators {
		if d.Name == name {
			return true
		}
	}
	return false
}

// DecoratorArg returns the first argument of the named class decorator,
// or "" when the decorator is absent or has no arguments.
func (c *ClassDecl) DecoratorArg(name string) string {
	for _, d := range c.Decorators {
		if d.Name == name && len(d.Args) > 0 {
			return d.Args[0]
		}
	}
	return ""
}

var (
	decoratorRe = regexp.MustCompile(`@([A-Za-z_$][\w$]*)\s*(?:\(([^)]*)\))?`)

	classRe = regexp.MustCompile(
		`((?:@[A-Za-z_$][\w$]*(?:\([^)]*\))?[ \t\r\n]*)*)` +
			`(?:export[ \t]+)?(?:default[ \t]+)?(?:abstract[ \t]+)?class[ \t]+([A-Za-z_$][\w$]*)`)

	interfaceRe = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?interface[ \t]+([A-Za-z_$][\w$]*)`)
	aliasRe     = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?type[ \t]+([A-Za-z_$][\w$]*)(?:<[^=]*?>)?[ \t]*=`)
	enumRe      = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:const[ \t]+)?enum[ \t]+([A-Za-z_$][\w$]*)`)

	methodStartRe = regexp.MustCompile(
		`(?m)^[ \t]*((?:@[A-Za-z_$][\w$]*(?:\([^)]*\))?[ \t\r\n]*)*)` +
			`(?:(public|private|protected)[ \t]+)?(?:static[ \t]+)?(?:async[ \t]+)?` +
			`([A-Za-z_$][\w$]*)[ \t]*\(`)

	propRe       = regexp.MustCompile(`^[ \t]*(?:readonly[ \t]+)?([A-Za-z_$][\w$]*)(\?)?[ \t]*:[ \t]*(.+?)[;,]?[ \t]*$`)
	enumMemberRe = regexp.MustCompile(`(?m)^[ \t]*([A-Za-z_$][\w$]*)[ \t]*(?:=[^,\n]+)?,?[ \t]*$`)
)

// methodNameBlocklist keeps control-flow keywords and constructors from
// being picked up as methods by the lexical member scan.
var methodNameBlocklist = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "new": true, "function": true, "constructor": true,
	"super": true, "typeof": true,
}

// parseDeclarations lexically scans one file's text into FileDecls. The scan
// is tolerant: malformed regions yield no declarations instead of errors.
func parseDeclarations(src string) *FileDecls {
	decls := &FileDecls{}

	for _, m := range classRe.FindAllStringSubmatchIndex(src, -1) {
		prefix := submatch(src, m, 1)
		name := submatch(src, m, 2)
		body, ok := blockAfter(src, m[1])
		if !ok {
			continue
		}
		decls.Classes = append(decls.Classes, ClassDecl{
			Name:       name,
			Decorators: parseDecorators(prefix),
			Methods:    parseClassBody(body),
		})
	}

	for _, m := range interfaceRe.FindAllStringSubmatchIndex(src, -1) {
		name := submatch(src, m, 1)
		body, ok := blockAfter(src, m[1])
		if !ok {
			continue
		}
		decls.Interfaces = append(decls.Interfaces, InterfaceDecl{
			Name:  name,
			Props: parseInterfaceBody(body),
		})
	}

	for _, m := range aliasRe.FindAllStringSubmatch(src, -1) {
		decls.Aliases = append(decls.Aliases, m[1])
	}

	for _, m := range enumRe.FindAllStringSubmatchIndex(src, -1) {
		name := submatch(src, m, 1)
		body, ok := blockAfter(src, m[1])
		if !ok {
			continue
		}
		decls.Enums = append(decls.Enums, EnumDecl{
			Name:    name,
			Members: parseEnumBody(body),
		})
	}

	return decls
}

func submatch(src string, idx []int, n int) string {
	if idx[2*n] < 0 {
		return ""
	}
	return src[idx[2*n]:idx[2*n+1]]
}

// parseDecorators extracts decorators from the text preceding a declaration.
func parseDecorators(prefix string) []Decorator {
	var out []Decorator
	for _, m := range decoratorRe.FindAllStringSubmatch(prefix, -1) {
		d := Decorator{Name: m[1]}
		if strings.TrimSpace(m[2]) != "" {
			for _, arg := range splitTopLevel(m[2], ',') {
				d.Args = append(d.Args, unquote(strings.TrimSpace(arg)))
			}
		}
		out = append(out, d)
	}
	return out
}

// parseClassBody walks a class body with a cursor, extracting member methods
// and skipping their bodies so nested call sites are not mistaken for
// further members.
func parseClassBody(body string) []MethodDecl {
	var methods []MethodDecl
	cursor := 0
	for cursor < len(body) {
		loc := methodStartRe.FindStringSubmatchIndex(body[cursor:])
		if loc == nil {
			break
		}
		rest := body[cursor:]
		prefix := submatch(rest, loc, 1)
		visibility := submatch(rest, loc, 2)
		name := submatch(rest, loc, 3)

		// loc[1] sits just past the opening paren of the parameter list.
		paramsText, paramsEnd, ok := parenSpan(rest, loc[1]-1)
		if !ok {
			cursor += loc[1]
			continue
		}

		if methodNameBlocklist[name] {
			cursor += paramsEnd
			continue
		}

		method := MethodDecl{
			Name:       name,
			Decorators: parseDecorators(prefix),
			Params:     parseParams(paramsText),
			Visibility: visibility,
		}

		// Optional return type annotation between ")" and the body.
		after := rest[paramsEnd:]
		bodyOpen := strings.IndexByte(after, '{')
		stop := bodyOpen
		if stop < 0 {
			stop = len(after)
		}
		head := after[:stop]
		if colon := strings.Index(head, ":"); colon >= 0 {
			method.ReturnType = strings.TrimSpace(head[colon+1:])
		}

		methods = append(methods, method)

		if bodyOpen >= 0 {
			_, end, ok := braceSpan(after, bodyOpen)
			if ok {
				cursor += paramsEnd + end
				continue
			}
		}
		cursor += paramsEnd
	}
	return methods
}

// parseParams splits a parameter list and extracts each parameter's name,
// type text, optional flag and decorators.
func parseParams(text string) []ParamDecl {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var params []ParamDecl
	for _, part := range splitTopLevel(text, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p := ParamDecl{Type: AnyType}
		p.Decorators = parseDecorators(part)
		// Strip decorators and modifiers before reading the name.
		stripped := decoratorRe.ReplaceAllString(part, "")
		for _, mod := range []string{"public ", "private ", "protected ", "readonly "} {
			stripped = strings.ReplaceAll(stripped, mod, " ")
		}
		stripped = strings.TrimLeft(strings.TrimSpace(stripped), ".")
		// Default values do not contribute to the declared type text.
		if eq := topLevelIndex(stripped, '='); eq >= 0 {
			stripped = stripped[:eq]
		}
		namePart := stripped
		if colon := topLevelIndex(stripped, ':'); colon >= 0 {
			namePart = stripped[:colon]
			if t := strings.TrimSpace(stripped[colon+1:]); t != "" {
				p.Type = t
			}
		}
		namePart = strings.TrimSpace(namePart)
		if strings.HasSuffix(namePart, "?") {
			p.Optional = true
			namePart = strings.TrimSuffix(namePart, "?")
		}
		p.Name = strings.TrimSpace(namePart)
		if p.Name == "" {
			continue
		}
		params = append(params, p)
	}
	return params
}

// parseInterfaceBody reads property signatures line by line. Method
// signatures (name followed by a paren) are skipped: interfaces contribute
// data shapes, not operations.
func parseInterfaceBody(body string) []PropDecl {
	var props []PropDecl
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if open := strings.IndexByte(trimmed, '('); open >= 0 {
			if colon := strings.IndexByte(trimmed, ':'); colon < 0 || open < colon {
				continue
			}
		}
		m := propRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		props = append(props, PropDecl{
			Name:     m[1],
			Optional: m[2] == "?",
			Type:     strings.TrimSpace(m[3]),
		})
	}
	return props
}

func parseEnumBody(body string) []string {
	var members []string
	for _, m := range enumMemberRe.FindAllStringSubmatch(body, -1) {
		members = append(members, m[1])
	}
	return members
}

// blockAfter finds the next top-level "{...}" starting at or after pos and
// returns its inner text.
func blockAfter(src string, pos int) (string, bool) {
	open := strings.IndexByte(src[pos:], '{')
	if open < 0 {
		return "", false
	}
	inner, _, ok := braceSpan(src, pos+open)
	return inner, ok
}

// braceSpan returns the text between the brace at open and its matching
// close, skipping string literals and comments, plus the index just past
// the closing brace.
func braceSpan(src string, open int) (string, int, bool) {
	return delimSpan(src, open, '{', '}')
}

// parenSpan is braceSpan for parentheses.
func parenSpan(src string, open int) (string, int, bool) {
	return delimSpan(src, open, '(', ')')
}

func delimSpan(src string, open int, lo, hi byte) (string, int, bool) {
	if open >= len(src) || src[open] != lo {
		return "", 0, false
	}
	depth := 0
	i := open
	for i < len(src) {
		c := src[i]
		switch c {
		case '\'', '"', '`':
			i = skipString(src, i)
			continue
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
					i += nl
					continue
				}
				return "", 0, false
			}
			if i+1 < len(src) && src[i+1] == '*' {
				if end := strings.Index(src[i+2:], "*/"); end >= 0 {
					i += end + 4
					continue
				}
				return "", 0, false
			}
		case lo:
			depth++
		case hi:
			depth--
			if depth == 0 {
				return src[open+1 : i], i + 1, true
			}
		}
		i++
	}
	return "", 0, false
}

// skipString advances past a quoted literal starting at i, honoring
// backslash escapes. Returns the index just past the closing quote.
func skipString(src string, i int) int {
	quote := src[i]
	i++
	for i < len(src) {
		if src[i] == '\\' {
			i += 2
			continue
		}
		if src[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

// splitTopLevel splits s on sep occurring outside strings, parens, braces,
// brackets and angle brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '\'', '"', '`':
			i = skipString(s, i)
			continue
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
		i++
	}
	parts = append(parts, s[last:])
	return parts
}

// topLevelIndex returns the index of the first top-level occurrence of c.
func topLevelIndex(s string, c byte) int {
	depth := 0
	i := 0
	for i < len(s) {
		ch := s[i]
		switch ch {
		case '\'', '"', '`':
			i = skipString(s, i)
			continue
		case '(', '{', '[', '<':
			depth++
		case ')', '}', ']', '>':
			depth--
		default:
			if ch == c && depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

func unquote(s string) string {
	return strings.Trim(s, "'\"`")
}
