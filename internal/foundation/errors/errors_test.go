package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "email service is not configured").
			WithSeverity(SeverityFatal).
			WithContext("field", "contact.resend_api_key").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "email service is not configured", err.Message())

		field, ok := err.Context().GetString("field")
		require.True(t, ok)
		assert.Equal(t, "contact.resend_api_key", field)
		assert.True(t, err.IsFatal())
	})

	t.Run("Error string includes cause", func(t *testing.T) {
		err := WrapError(errors.New("connection refused"), CategoryNetwork, "blob fetch failed").Build()
		assert.Equal(t, "[network:error] blob fetch failed: connection refused", err.Error())
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ValidationError("bad input").Build()
		derived := base.WithContext("field", "firstName")

		_, ok := base.Context().Get("field")
		assert.False(t, ok, "original context must not change")
		v, ok := derived.Context().GetString("field")
		require.True(t, ok)
		assert.Equal(t, "firstName", v)
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		category ErrorCategory
		canRetry bool
	}{
		{"validation", ValidationError("x").Build(), CategoryValidation, false},
		{"not found", NotFoundError("x").Build(), CategoryNotFound, false},
		{"config", ConfigError("x").Build(), CategoryConfig, false},
		{"network", NetworkError("x").Build(), CategoryNetwork, true},
		{"upstream", UpstreamError("x").Build(), CategoryUpstream, true},
		{"docs", DocsError("x").Build(), CategoryDocs, false},
		{"internal", InternalError("x").Build(), CategoryInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.canRetry, tt.err.CanRetry())
		})
	}
}

func TestErrorChainHelpers(t *testing.T) {
	inner := UpstreamError("send failed").Build()
	wrapped := fmt.Errorf("contact: %w", inner)

	c, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, c)
	assert.True(t, HasCategory(wrapped, CategoryUpstream))
	assert.Equal(t, CategoryUpstream, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	assert.Equal(t, SeverityError, GetSeverity(errors.New("plain")))
	assert.True(t, errors.Is(wrapped, UpstreamError("send failed").Build()))
}
