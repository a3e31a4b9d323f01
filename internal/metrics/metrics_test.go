package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordWatchListMutation(t *testing.T) {
	before := testutil.ToFloat64(WatchListMutations.WithLabelValues("remove"))
	RecordWatchListMutation("remove")
	assert.Equal(t, before+1, testutil.ToFloat64(WatchListMutations.WithLabelValues("remove")))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CatalogCacheLookups.WithLabelValues("miss")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordHTTPRequest("GET", "/health", "200", 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}
