package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docweave/docweave/internal/analyzer"
)

func route(method, path, handler string) analyzer.Route {
	return analyzer.Route{Method: method, Path: path, Handler: handler}
}

func TestGroupControllerPrecedence(t *testing.T) {
	controllers := []analyzer.Controller{
		{Name: "UsersController", Routes: []analyzer.Route{
			route("GET", "/users", "findAll"),
			route("POST", "/users", "create"),
		}},
		{Name: "OrderController", Routes: []analyzer.Route{
			route("GET", "/orders", "list"),
		}},
	}
	// A loose route not owned by any controller.
	routes := []analyzer.Route{
		route("GET", "/misc", "miscHandler"),
	}

	modules := New().Group(routes, nil, controllers)

	require.Len(t, modules, 2)
	assert.Len(t, modules["users"], 2)
	assert.Len(t, modules["orders"], 1)

	// Controller grouping is total: the loose route is not placed anywhere.
	for _, rs := range modules {
		for _, r := range rs {
			assert.NotEqual(t, "/misc", r.Path)
		}
	}
}

func TestGroupControllersSharingModule(t *testing.T) {
	controllers := []analyzer.Controller{
		{Name: "UserController", Routes: []analyzer.Route{route("GET", "/users", "a")}},
		{Name: "UsersService", Routes: []analyzer.Route{route("GET", "/users/active", "b")}},
	}
	modules := New().Group(nil, nil, controllers)
	require.Len(t, modules, 1)
	assert.Len(t, modules["users"], 2)
}

func TestGroupFallbackHandlerMatch(t *testing.T) {
	services := []analyzer.Service{
		{Name: "UsersService"},
		{Name: "CompanyService"},
	}
	routes := []analyzer.Route{
		route("GET", "/whatever", "getUsers"),
		route("POST", "/other", "createCompanyBranch"),
	}

	modules := New().Group(routes, services, nil)

	require.Len(t, modules, 2)
	require.Len(t, modules["users"], 1)
	assert.Equal(t, "getUsers", modules["users"][0].Handler)
	require.Len(t, modules["companies"], 1)
	assert.Equal(t, "createCompanyBranch", modules["companies"][0].Handler)
}

func TestGroupFallbackPathSegment(t *testing.T) {
	routes := []analyzer.Route{
		route("GET", "/", "anonymous"),
		route("GET", "/orders/:id", "anonymous"),
		route("GET", "/Payments/refund", "anonymous"),
		route("GET", "", "anonymous"),
	}

	modules := New().Group(routes, nil, nil)

	assert.Len(t, modules["app"], 2, "root and empty paths land in the app module")
	assert.Len(t, modules["orders"], 1)
	assert.Len(t, modules["payments"], 1, "path segments are lower-cased")
}

func TestGroupFallbackRoundRobin(t *testing.T) {
	services := []analyzer.Service{
		{Name: "UsersService"},
		{Name: "CompanyService"},
	}
	// Paths of only parametric segments defeat the path rule; handlers are
	// anonymous so service matching is skipped too.
	var routes []analyzer.Route
	for i := 0; i < 8; i++ {
		routes = append(routes, route("GET", "/:id", "anonymous"))
	}

	modules := New().Group(routes, services, nil)

	assert.Len(t, modules["users"], 3, "positions 0-2")
	assert.Len(t, modules["companies"], 3, "positions 3-5")
	assert.Len(t, modules["app"], 2, "overflow past the service list")
}

func TestGroupFallbackOrderPreserved(t *testing.T) {
	routes := []analyzer.Route{
		route("GET", "/items", "anonymous"),
		route("POST", "/items", "anonymous"),
		route("DELETE", "/items/:id", "anonymous"),
	}

	modules := New().Group(routes, nil, nil)

	require.Len(t, modules["items"], 3)
	assert.Equal(t, "GET", modules["items"][0].Method)
	assert.Equal(t, "POST", modules["items"][1].Method)
	assert.Equal(t, "DELETE", modules["items"][2].Method)
}

func TestGroupSanitizesModuleKeys(t *testing.T) {
	routes := []analyzer.Route{
		route("GET", "/user.profile/settings", "anonymous"),
	}

	modules := New().Group(routes, nil, nil)

	require.Len(t, modules, 1)
	assert.Contains(t, modules, "user_profile")
}

func TestGroupEmptyInput(t *testing.T) {
	modules := New().Group(nil, nil, nil)
	assert.Empty(t, modules)
}

func TestGroupServiceDedup(t *testing.T) {
	// Two services deriving the same module name keep one round-robin slot.
	services := []analyzer.Service{
		{Name: "UserService"},
		{Name: "UsersService"},
		{Name: "CompanyService"},
	}
	var routes []analyzer.Route
	for i := 0; i < 6; i++ {
		routes = append(routes, route("GET", "/:id", "anonymous"))
	}

	modules := New().Group(routes, services, nil)

	assert.Len(t, modules["users"], 3)
	assert.Len(t, modules["companies"], 3)
}
