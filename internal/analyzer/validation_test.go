package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorReview(t *testing.T) {
	v := NewValidator()

	t.Run("clean_result", func(t *testing.T) {
		result := &AnalysisResult{Routes: []Route{
			{Method: "GET", Path: "/users", Handler: "findAll"},
			{Method: "POST", Path: "/users", Handler: "create"},
		}}
		assert.Empty(t, v.Review(result))
	})

	t.Run("duplicate_route", func(t *testing.T) {
		result := &AnalysisResult{Routes: []Route{
			{Method: "GET", Path: "/users", Handler: "findAll"},
			{Method: "GET", Path: "/users", Handler: "findAll"},
		}}
		advisories := v.Review(result)
		require.Len(t, advisories, 1)
		assert.Equal(t, "duplicate_route", advisories[0].Type)
		assert.Contains(t, advisories[0].Message, "GET /users")
		assert.Contains(t, advisories[0].Message, "2 times")
	})

	t.Run("suspicious_path", func(t *testing.T) {
		result := &AnalysisResult{Routes: []Route{
			{Method: "GET", Path: ":id", Handler: "findOne"},
		}}
		advisories := v.Review(result)
		require.Len(t, advisories, 1)
		assert.Equal(t, "suspicious_path", advisories[0].Type)
	})

	t.Run("anonymous_handlers_counted_once", func(t *testing.T) {
		result := &AnalysisResult{Routes: []Route{
			{Method: "GET", Path: "/a", Handler: "anonymous"},
			{Method: "GET", Path: "/b", Handler: "anonymous"},
			{Method: "GET", Path: "/c", Handler: "named"},
		}}
		advisories := v.Review(result)
		require.Len(t, advisories, 1)
		assert.Equal(t, "anonymous_handler", advisories[0].Type)
		assert.Contains(t, advisories[0].Message, "2 route(s)")
	})
}
