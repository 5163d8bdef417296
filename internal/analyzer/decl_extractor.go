package analyzer

import "strings"

// classRole is the tagged result of classifying a class declaration.
// A class can satisfy both heuristics at once; that is not an error.
type classRole int

const (
	roleNeither classRole = iota
	roleController
	roleService
	roleBoth
)

// routeDecorators is the fixed set of method decorators that mark a route
// method. The HTTP method is the upper-cased decorator name.
var routeDecorators = []string{"Get", "Post", "Put", "Delete", "Patch", "All"}

// DeclarationExtractor classifies parsed declarations into controllers,
// services and types using decorator names and naming conventions. It does
// not type-check anything: a class "looks like" a controller or it doesn't.
type DeclarationExtractor struct{}

// NewDeclarationExtractor creates a declaration extractor.
func NewDeclarationExtractor() *DeclarationExtractor {
	return &DeclarationExtractor{}
}

// DeclResult is the per-file output of the declaration scan.
type DeclResult struct {
	Controllers []Controller
	Services    []Service
	Types       []TypeDef
}

// Extract parses filePath's src and classifies every declaration.
func (e *DeclarationExtractor) Extract(src, filePath string) *DeclResult {
	decls := parseDeclarations(src)
	result := &DeclResult{}

	for i := range decls.Classes {
		class := &decls.Classes[i]
		switch classify(class) {
		case roleController:
			e.appendController(result, class, filePath)
		case roleService:
			result.Services = append(result.Services, e.buildService(class, filePath))
		case roleBoth:
			e.appendController(result, class, filePath)
			result.Services = append(result.Services, e.buildService(class, filePath))
		}
	}

	for _, iface := range decls.Interfaces {
		t := TypeDef{Name: iface.Name, Kind: TypeKindInterface, FilePath: filePath}
		for _, p := range iface.Props {
			t.Properties = append(t.Properties, Property{Name: p.Name, Type: p.Type, Optional: p.Optional})
		}
		result.Types = append(result.Types, t)
	}

	for _, alias := range decls.Aliases {
		// Aliases are recorded by name only; their right-hand side is not
		// structurally expanded.
		result.Types = append(result.Types, TypeDef{Name: alias, Kind: TypeKindAlias, FilePath: filePath})
	}

	for _, enum := range decls.Enums {
		t := TypeDef{Name: enum.Name, Kind: TypeKindEnum, FilePath: filePath}
		for _, member := range enum.Members {
			t.Properties = append(t.Properties, Property{Name: member, Type: "string"})
		}
		result.Types = append(result.Types, t)
	}

	return result
}

// classify applies the controller and service heuristics to one class.
func classify(class *ClassDecl) classRole {
	lower := strings.ToLower(class.Name)
	isController := class.HasDecorator("Controller") || strings.Contains(lower, "controller")
	isService := class.HasDecorator("Injectable") || strings.Contains(lower, "service")

	switch {
	case isController && isService:
		return roleBoth
	case isController:
		return roleController
	case isService:
		return roleService
	default:
		return roleNeither
	}
}

// classFramework labels a class by decorator presence. Decorated classes
// follow the Nest convention; everything else defaults to express. This is
// a convention-driven guess, not detection.
func classFramework(class *ClassDecl) Framework {
	if class.HasDecorator("Controller") || class.HasDecorator("Injectable") {
		return FrameworkNest
	}
	return FrameworkExpress
}

// appendController emits a Controller only when the class owns at least one
// route method.
func (e *DeclarationExtractor) appendController(result *DeclResult, class *ClassDecl, filePath string) {
	basePath := unquote(class.DecoratorArg("Controller"))
	framework := classFramework(class)

	var routes []Route
	for i := range class.Methods {
		method := &class.Methods[i]
		verb, ok := routeDecorator(method)
		if !ok {
			continue
		}
		routePath := "/"
		for _, d := range method.Decorators {
			if d.Name == verb && len(d.Args) > 0 {
				routePath = unquote(d.Args[0])
			}
		}
		routes = append(routes, Route{
			Path:       composePath(basePath, routePath),
			Method:     strings.ToUpper(verb),
			Handler:    method.Name,
			Middleware: []string{},
			Parameters: methodParameters(method),
			Framework:  framework,
		})
	}

	if len(routes) == 0 {
		return
	}
	result.Controllers = append(result.Controllers, Controller{
		Name:      class.Name,
		Routes:    routes,
		Framework: framework,
		FilePath:  filePath,
	})
}

func routeDecorator(method *MethodDecl) (string, bool) {
	for _, d := range method.Decorators {
		for _, verb := range routeDecorators {
			if d.Name == verb {
				return verb, true
			}
		}
	}
	return "", false
}

// composePath joins a controller base path with a method route path.
// With an empty base the method path passes through unchanged, so a lone
// "/" stays "/".
func composePath(basePath, routePath string) string {
	if basePath == "" {
		return routePath
	}
	if routePath == "/" {
		return "/" + basePath
	}
	return "/" + basePath + "/" + strings.TrimPrefix(routePath, "/")
}

// methodParameters converts declared parameters, recording a binding tag
// only when the parameter carries exactly one decorator.
func methodParameters(method *MethodDecl) []Parameter {
	var params []Parameter
	for _, p := range method.Params {
		param := Parameter{
			Name:     p.Name,
			Type:     p.Type,
			Optional: p.Optional,
		}
		if len(p.Decorators) == 1 {
			param.Annotation = p.Decorators[0].Name
		}
		params = append(params, param)
	}
	return params
}

// buildService records every method of a service class, not just decorated
// ones. Visibility is "public unless explicitly marked otherwise".
func (e *DeclarationExtractor) buildService(class *ClassDecl, filePath string) Service {
	svc := Service{
		Name:      class.Name,
		FilePath:  filePath,
		Framework: classFramework(class),
	}
	for i := range class.Methods {
		m := &class.Methods[i]
		returnType := m.ReturnType
		if returnType == "" {
			returnType = "void"
		}
		svc.Methods = append(svc.Methods, Method{
			Name:       m.Name,
			Parameters: methodParameters(m),
			ReturnType: returnType,
			Public:     m.Visibility != "private" && m.Visibility != "protected",
		})
	}
	return svc
}
