package trace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fap/internal/trace"
)

func TestNewID_Unique(t *testing.T) {
	id1 := trace.NewID()
	id2 := trace.NewID()

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)
}

func TestContextPropagation(t *testing.T) {
	id := trace.NewID()
	ctx := trace.WithTraceID(context.Background(), id)

	assert.Equal(t, id, trace.FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	assert.Equal(t, trace.ID(""), trace.FromContext(context.Background()))
}

func TestID_String(t *testing.T) {
	id := trace.ID("trace-123")
	assert.Equal(t, "trace-123", id.String())
}
