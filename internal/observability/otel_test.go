package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/marpdeck/internal/logger"
)

func TestDisabledIsNoop(t *testing.T) {
	tr := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	_, span := tr.Provider.Tracer("t").Start(context.Background(), "x")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestEnabledExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := InitOTel(context.Background(), logger.Nop(), OtelConfig{Enabled: true, SampleRatio: 1, Writer: &buf})
	_, span := tr.Provider.Tracer("t").Start(context.Background(), "render")
	require.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, tr.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"render"`)
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.25, clampRatio(0.25))
}
