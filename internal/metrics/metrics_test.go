package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/lineator/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks(t *testing.T) {
	m := New()
	h := m.Hooks()
	ctx := context.Background()

	h.OnWarning(ctx, domain.Warning{Message: "x"})
	h.OnFrontier(ctx, &domain.FrontierEvent{Depth: 1, States: make([]domain.CompositeState, 3)})
	h.OnState(ctx, &domain.StateEvent{Determined: true})
	h.OnState(ctx, &domain.StateEvent{Determined: false})
	h.OnState(ctx, &domain.StateEvent{Determined: true})
	h.OnTransition(ctx, &domain.TransitionEvent{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Warnings))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.States.WithLabelValues("determined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.States.WithLabelValues("undetermined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Frontier))
}

func TestObserveLineation(t *testing.T) {
	m := New()
	m.ObserveLineation(time.Now(), nil)
	m.ObserveLineation(time.Now(), fmt.Errorf("wrapped: %w", domain.ErrInvalidAlphabet))
	m.ObserveLineation(time.Now(), errors.New("disk on fire"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lineations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lineations.WithLabelValues(domain.KindInvalidAlphabet)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lineations.WithLabelValues(domain.KindInternal)))
}

func TestHandlerAndTextfile(t *testing.T) {
	m := New()
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lineator_cache_requests_total{result="miss"} 2`)

	path := filepath.Join(t.TempDir(), "lineator.prom")
	require.NoError(t, m.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lineator_cache_requests_total{result="hit"} 1`)
}
