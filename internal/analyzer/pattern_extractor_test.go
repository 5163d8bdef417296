package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractorCallStyle(t *testing.T) {
	e := NewPatternExtractor()

	t.Run("named_function_handler", func(t *testing.T) {
		src := `app.post('/orders', function createOrder(req, res) {
  res.status(201).end();
});`
		routes := e.Extract(src)
		require.Len(t, routes, 1)
		assert.Equal(t, "POST", routes[0].Method)
		assert.Equal(t, "/orders", routes[0].Path)
		assert.Equal(t, "createOrder", routes[0].Handler)
		assert.Equal(t, FrameworkExpress, routes[0].Framework)
	})

	t.Run("identifier_reference_resolves_anonymous", func(t *testing.T) {
		src := `const healthCheck = (req, res) => res.json({ ok: true });
app.get('/health', healthCheck);`
		routes := e.Extract(src)
		require.Len(t, routes, 1)
		assert.Equal(t, "GET", routes[0].Method)
		assert.Equal(t, "/health", routes[0].Path)
		assert.Equal(t, "anonymous", routes[0].Handler)
	})

	t.Run("inline_arrow_resolves_anonymous", func(t *testing.T) {
		src := `router.delete('/sessions/:id', async (req, res) => {});`
		routes := e.Extract(src)
		require.Len(t, routes, 1)
		assert.Equal(t, "DELETE", routes[0].Method)
		assert.Equal(t, "anonymous", routes[0].Handler)
	})

	t.Run("receiver_labels", func(t *testing.T) {
		src := `app.get('/a', fn);
router.get('/b', fn);
fastify.get('/c', fn);`
		routes := e.Extract(src)
		require.Len(t, routes, 3)
		assert.Equal(t, FrameworkExpress, routes[0].Framework)
		assert.Equal(t, FrameworkExpress, routes[1].Framework)
		assert.Equal(t, FrameworkFastify, routes[2].Framework)
	})

	t.Run("fixed_parameter_shape", func(t *testing.T) {
		src := `app.put('/items/:id', function update(req, res) {});`
		routes := e.Extract(src)
		require.Len(t, routes, 1)
		params := routes[0].Parameters
		require.Len(t, params, 3)
		assert.Equal(t, Parameter{Name: "req", Type: "Request"}, params[0])
		assert.Equal(t, Parameter{Name: "res", Type: "Response"}, params[1])
		assert.Equal(t, Parameter{Name: "next", Type: "NextFunction", Optional: true}, params[2])
	})

	t.Run("middleware_always_empty", func(t *testing.T) {
		src := `app.get('/secure', authMiddleware, function handler(req, res) {});`
		routes := e.Extract(src)
		require.Len(t, routes, 1)
		assert.NotNil(t, routes[0].Middleware)
		assert.Empty(t, routes[0].Middleware)
	})
}

func TestPatternExtractorDecoratorStyle(t *testing.T) {
	e := NewPatternExtractor()

	t.Run("verb_decorator_with_path", func(t *testing.T) {
		src := `@Get('/profile')
async getProfile(req) {
  return this.users.profile(req.user.id);
}`
		routes := e.Extract(src)
		require.Len(t, routes, 1)
		assert.Equal(t, "GET", routes[0].Method)
		assert.Equal(t, "/profile", routes[0].Path)
		assert.Equal(t, "getProfile", routes[0].Handler)
		assert.Equal(t, FrameworkNest, routes[0].Framework)
	})

	t.Run("decorator_without_path_not_matched", func(t *testing.T) {
		src := `@Get()
findAll() {}`
		assert.Empty(t, e.Extract(src))
	})

	t.Run("undecorated_member_not_matched", func(t *testing.T) {
		src := `@Injectable()
export class UsersService {
  findAll() {}
}`
		assert.Empty(t, e.Extract(src))
	})
}

func TestPatternExtractorNoDeduplication(t *testing.T) {
	// The same logical endpoint registered both ways yields two records.
	src := `app.get('/users', function getUsers(req, res) {});

@Get('/users')
async getUsers(req) {}
`
	routes := NewPatternExtractor().Extract(src)
	require.Len(t, routes, 2)
	assert.Equal(t, routes[0].Path, routes[1].Path)
	assert.Equal(t, routes[0].Method, routes[1].Method)
	assert.NotEqual(t, routes[0].Framework, routes[1].Framework)
}

func TestPatternExtractorNeverFails(t *testing.T) {
	e := NewPatternExtractor()
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("not even javascript {{{"))
}

func TestResolveHandlerName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"const_assignment", "const getUsers = (req, res) => {}", "getUsers"},
		{"function_declaration", "function listItems(req, res) {}", "listItems"},
		{"async_named", "async fetchAll(req, res) {}", "fetchAll"},
		{"bare_identifier", "getUsers", "anonymous"},
		{"empty", "", "anonymous"},
		{"arrow_only", "(req, res) => {}", "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveHandlerName(tt.text))
		})
	}
}
