package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/confidential"
	"github.com/btcq-org/ctoken/zk"
)

func TestObserve(t *testing.T) {
	m := NewMetrics()
	m.Observe(confidential.Event{Kind: confidential.EventProofGenerated, Op: confidential.OpTransfer, ProofKind: zk.ProofKindRange})
	m.Observe(confidential.Event{Kind: confidential.EventProofGenerated, Op: confidential.OpWithdraw, ProofKind: zk.ProofKindRange})
	m.Observe(confidential.Event{Kind: confidential.EventContextOpened, ProofKind: zk.ProofKindEquality})
	m.Observe(confidential.Event{Kind: confidential.EventContextClosed, ProofKind: zk.ProofKindEquality})
	m.Observe(confidential.Event{Kind: confidential.EventSettled, Op: confidential.OpTransfer, Elapsed: time.Second})
	m.Observe(confidential.Event{Kind: confidential.EventFailed, Op: confidential.OpWithdraw, State: confidential.StatePendingProofs})
	m.Observe(confidential.Event{Kind: confidential.EventSubmitted, Op: confidential.OpTransfer})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Counter(MetricNameProofs, "Range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter(MetricNameContextsOpened, "Equality")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter(MetricNameContextsClosed, "Equality")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter(MetricNameOperations, "transfer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter(MetricNameOperationErrors, "withdraw", "pending_proofs")))
	assert.Nil(t, m.Counter("unknown"))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter(MetricNameOperations, "deposit")
	router := mux.NewRouter()
	m.RegisterHandlers(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.True(t, strings.Contains(body, `ctoken_confidential_operations_total{op="deposit"} 1`), body)
}
