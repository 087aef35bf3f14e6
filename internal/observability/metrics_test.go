package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/auth/me", "GET", 200, time.Millisecond)
	m.RecordRequest("/auth/me", "GET", 200, time.Millisecond)
	m.RecordError("/auth/me", "GET", "UNAUTHORIZED")
	m.RecordTokenRejection("expired")
	m.RecordTokenIssued()

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/auth/me|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/auth/me|GET|UNAUTHORIZED"])
	assert.Equal(t, int64(1), snap.TokenRejections["expired"])
	assert.Equal(t, int64(1), snap.TokensIssued)

	snap.TokenRejections["expired"] = 99
	assert.Equal(t, int64(1), m.Snapshot().TokenRejections["expired"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	m.RecordTokenRejection("expired")
	m.RecordTokenIssued()
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
