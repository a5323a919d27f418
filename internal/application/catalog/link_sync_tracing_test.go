package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSync_EmiteSpanConResultado(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	store := newRecordingStore()
	seedCategory(t, store, "cat1")
	seedProduct(t, store, "p1")
	seedProduct(t, store, "p2")
	store.failUpdate["p2"] = true

	_, err := newSync(store).SyncCategoryProductLinks(context.Background(), "cat1", []string{"p1", "p2"}, nil)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "LinkSynchronizer.Sync", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code, "un fallo parcial marca el span")

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "category", attrs["link.side"].AsString())
	assert.Equal(t, "cat1", attrs["link.primary"].AsString())
	assert.Equal(t, int64(2), attrs["link.added"].AsInt64())
	assert.Equal(t, int64(1), attrs["link.failures"].AsInt64())
}
