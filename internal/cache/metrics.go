package cache

// Metrics holds the lookup and eviction counters of one LRU engine.
//
// Counters are mutated only by the engine that owns them, under whatever
// lock guards that engine. Callers always receive a copy.
type Metrics struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	TotalRequests uint64
}

// RecordHit counts a lookup that found a value.
func (m *Metrics) RecordHit() {
	m.Hits++
	m.TotalRequests++
}

// RecordMiss counts a lookup that found nothing.
func (m *Metrics) RecordMiss() {
	m.Misses++
	m.TotalRequests++
}

// RecordEviction counts a capacity eviction. Evictions are not requests.
func (m *Metrics) RecordEviction() {
	m.Evictions++
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	*m = Metrics{}
}

// HitRate returns Hits / TotalRequests, or 0 when nothing was requested yet.
func (m Metrics) HitRate() float64 {
	if m.TotalRequests == 0 {
		return 0
	}
	return float64(m.Hits) / float64(m.TotalRequests)
}

// MissRate returns 1 - HitRate.
func (m Metrics) MissRate() float64 {
	return 1 - m.HitRate()
}

// Add returns the field-wise sum of m and o.
func (m Metrics) Add(o Metrics) Metrics {
	return Metrics{
		Hits:          m.Hits + o.Hits,
		Misses:        m.Misses + o.Misses,
		Evictions:     m.Evictions + o.Evictions,
		TotalRequests: m.TotalRequests + o.TotalRequests,
	}
}

// StatsSource is anything that can report cache metrics and occupancy.
// Cache and Sharded both implement it.
type StatsSource interface {
	Metrics() Metrics
	Len() int
	Cap() int
}
