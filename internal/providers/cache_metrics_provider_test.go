package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestMetrics struct {
	mockMetrics
	hits   map[string]int
	misses map[string]int
}

func newCacheMetricsTestMetrics() *cacheMetricsTestMetrics {
	return &cacheMetricsTestMetrics{hits: map[string]int{}, misses: map[string]int{}}
}

func (m *cacheMetricsTestMetrics) IncCacheHits(ns string)   { m.hits[ns]++ }
func (m *cacheMetricsTestMetrics) IncCacheMisses(ns string) { m.misses[ns]++ }

type cacheMetricsTestInner struct {
	data   map[string][]byte
	purged bool
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}
func (c *cacheMetricsTestInner) Purge() {
	c.data = map[string][]byte{}
	c.purged = true
}

func TestMetricsCacheProvider_HitsAndMissesByNamespace(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"aff:::0": []byte("[]")}}
	metrics := newCacheMetricsTestMetrics()
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics, logger: &cacheTestLogger{}}

	cache.Get("aff:::0")
	cache.Get("aff:gratidao::20")
	cache.Get("aff:::0")
	cache.Get("plain")

	assert.Equal(t, map[string]int{"aff": 2}, metrics.hits)
	assert.Equal(t, map[string]int{"aff": 1, "other": 1}, metrics.misses)
}

func TestCacheNamespace(t *testing.T) {
	assert.Equal(t, "aff", cacheNamespace("aff:::0"))
	assert.Equal(t, "other", cacheNamespace("no-prefix"))
	assert.Equal(t, "other", cacheNamespace(":leading"))
}

func TestMetricsCacheProvider_DelegatesWrites(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	cache := &MetricsCacheProvider{inner: inner, metrics: newCacheMetricsTestMetrics(), logger: &cacheTestLogger{}}

	cache.Set("key2", []byte("val2"))
	val, ok := inner.Get("key2")
	assert.True(t, ok)
	assert.Equal(t, []byte("val2"), val)

	cache.Purge()
	assert.True(t, inner.purged)
	assert.Empty(t, inner.data)
}

func TestNewInstrumentedCacheProvider_DisabledIsBare(t *testing.T) {
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, 5), &cacheTestLogger{}, newCacheMetricsTestMetrics())
	assert.IsType(t, &noopCache{}, c)

	c = NewInstrumentedCacheProvider(cacheConfig(true, 1, 5), &cacheTestLogger{}, newCacheMetricsTestMetrics())
	assert.IsType(t, &MetricsCacheProvider{}, c)
}
