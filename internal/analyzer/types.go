package analyzer

import "time"

// Framework is a best-effort label for the web-framework convention a route
// or class appears to follow. It is never semantically verified.
type Framework string

const (
	FrameworkExpress Framework = "express"
	FrameworkNest    Framework = "nestjs"
	FrameworkFastify Framework = "fastify"
	FrameworkKoa     Framework = "koa"
	FrameworkUnknown Framework = "unknown"
)

// AnyType is the sentinel used when a declared type cannot be resolved.
const AnyType = "any"

// Route represents a single detected HTTP route registration.
type Route struct {
	Path       string      `json:"path"`       // e.g. "/users/:id"
	Method     string      `json:"method"`     // e.g. "GET", always upper-cased
	Handler    string      `json:"handler"`    // resolved name or "anonymous"
	Middleware []string    `json:"middleware"` // ordered, frequently empty
	Parameters []Parameter `json:"parameters"`
	Framework  Framework   `json:"framework"` // which pattern/annotation family matched
}

// Parameter is a handler or method parameter.
type Parameter struct {
	Name       string `json:"name"`
	Type       string `json:"type"` // free-form type text, "any" when unresolved
	Optional   bool   `json:"optional"`
	Annotation string `json:"annotation,omitempty"` // binding decorator name, if exactly one
}

// Controller is a class that owns at least one route method.
type Controller struct {
	Name      string    `json:"name"`
	Routes    []Route   `json:"routes"`
	Framework Framework `json:"framework"`
	FilePath  string    `json:"filePath"`
}

// Service represents an injectable/service class and its methods.
type Service struct {
	Name      string    `json:"name"`
	Methods   []Method  `json:"methods"`
	FilePath  string    `json:"filePath"`
	Framework Framework `json:"framework"`
}

// Method is a service method signature.
type Method struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	ReturnType string      `json:"returnType"` // "void" when absent
	Public     bool        `json:"public"`     // not explicitly private/protected
}

// TypeKind classifies an extracted type declaration.
type TypeKind string

const (
	TypeKindInterface TypeKind = "interface"
	TypeKindClass     TypeKind = "class"
	TypeKindEnum      TypeKind = "enum"
	TypeKindAlias     TypeKind = "type"
)

// TypeDef is an extracted data type (interface, class, enum or alias).
type TypeDef struct {
	Name       string     `json:"name"`
	Kind       TypeKind   `json:"kind"`
	FilePath   string     `json:"filePath"`
	Properties []Property `json:"properties"`
}

// Property is a named member of a TypeDef.
type Property struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional"`
}

// Metadata summarizes an analysis run.
type Metadata struct {
	TotalRoutes      int           `json:"totalRoutes"`
	TotalControllers int           `json:"totalControllers"`
	TotalServices    int           `json:"totalServices"`
	TotalTypes       int           `json:"totalTypes"`
	FilesAnalyzed    int           `json:"filesAnalyzed"`
	Elapsed          time.Duration `json:"elapsed"`
}

// AnalysisResult is the complete, immutable output of one analysis run.
//
// No uniqueness constraint holds over (path, method): the declaration and
// pattern extractors run independently over every file and both may report
// the same registration. Completeness is favored over precision.
type AnalysisResult struct {
	Framework   Framework    `json:"framework"` // top-level display label only
	Routes      []Route      `json:"routes"`
	Controllers []Controller `json:"controllers"`
	Services    []Service    `json:"services"`
	Types       []TypeDef    `json:"types"`
	Metadata    Metadata     `json:"metadata"`
}
