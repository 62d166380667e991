package transport_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestServerSpans(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)))

	s := setup(t)
	created := s.createProduct(t, "Basil", 1, 1, 0.1)

	status, _ := s.do(t, http.MethodGet, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)

	ended := spans.Ended()
	require.NotEmpty(t, ended)
	span := ended[len(ended)-1]

	assert.Equal(t, "GET /api/v1/products/{id}", span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Contains(t, span.Attributes(), attribute.String("http.route", "/api/v1/products/{id}"))
}
