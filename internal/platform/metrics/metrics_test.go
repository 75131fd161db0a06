package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/studygroup-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEventCountsByType(t *testing.T) {
	m := New(prometheus.NewRegistry())

	for _, typ := range []string{events.GroupJoined, events.GroupJoined, events.TopicDeleted} {
		event, err := events.NewDomainEvent(typ, uuid.New(), uuid.New(), nil, time.Now())
		require.NoError(t, err)
		require.NoError(t, m.HandleEvent(context.Background(), event))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DomainEvents.WithLabelValues(events.GroupJoined)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DomainEvents.WithLabelValues(events.TopicDeleted)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DomainEvents.WithLabelValues(events.CommentAdded)))
	assert.Equal(t, len(events.Types()), testutil.CollectAndCount(m.DomainEvents))
}

func TestObserveConfirmation(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveConfirmation("topic", "requested")
	m.ObserveConfirmation("topic", "requested")
	m.ObserveConfirmation("event", "expired")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("topic", "requested")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("event", "expired")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/groups/{groupID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/groups/"+uuid.NewString(), nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/groups/{groupID}", "418")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveConfirmation("event", "confirmed")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "studygroup_confirmations_total")
	assert.Contains(t, rec.Body.String(), `type="group.created"`)
}
