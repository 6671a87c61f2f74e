package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector() *Collector {
	return NewCollector(prometheus.NewRegistry())
}

func TestRecordImport(t *testing.T) {
	c := newTestCollector()
	blocks := []*document.Block{
		{Type: "Paragraph"},
		{Type: "Paragraph"},
		{Type: "Table"},
	}

	c.RecordImport(blocks, 3*time.Millisecond, nil)
	c.RecordImport(nil, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.importsTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.importsTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.blocksTotal.WithLabelValues("Paragraph")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.blocksTotal.WithLabelValues("Table")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.importDuration))
}

func TestRecordReload(t *testing.T) {
	c := newTestCollector()
	c.RecordReload(12, nil)
	c.RecordReload(0, errors.New("bad manifest"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.reloadsTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reloadsTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 12.0, testutil.ToFloat64(c.registeredBlocks), "a failed reload keeps the gauge")
}

func TestRecordPublish(t *testing.T) {
	c := newTestCollector()
	c.RecordPublish(nil)
	c.RecordPublish(nil)
	c.RecordPublish(errors.New("timeout"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.publishesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.publishesTotal.WithLabelValues(OutcomeError)))
}

func TestHandler(t *testing.T) {
	c := NewCollector(nil)
	c.SetRegisteredBlocks(3)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "blockpaste_registered_blocks 3")
	assert.Contains(t, string(body), "go_goroutines")
}
