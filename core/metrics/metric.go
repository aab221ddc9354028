package metrics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

var Default = NewMetrics()

type Collectable interface {
	Collect() MetricPoint
}

// Metrics samples its collectables into in-memory series, every interval
// while Run is active and once more when its context ends.
type Metrics struct {
	mu       sync.Mutex
	interval time.Duration
	metrics  []Collectable
	Series   map[string][]MetricPoint
}

func NewMetrics() *Metrics {
	return &Metrics{
		interval: time.Second * 5,
		Series:   make(map[string][]MetricPoint),
	}
}

type MetricPoint struct {
	Time  int64
	Value int64
	Path  string
}

func (m *Metrics) SetInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = d
}

// Flush samples every collectable once.
func (m *Metrics) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.metrics {
		pt := c.Collect()
		m.Series[pt.Path] = append(m.Series[pt.Path], pt)
	}
}

func (m *Metrics) Run(ctx context.Context) {
	m.mu.Lock()
	ticker := time.NewTicker(m.interval)
	m.mu.Unlock()
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.Flush()
			return
		case <-ticker.C:
			m.Flush()
		}
	}
}

// Last returns the most recent sample of every series.
func (m *Metrics) Last() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	last := make(map[string]int64, len(m.Series))
	for path, series := range m.Series {
		if len(series) > 0 {
			last[path] = series[len(series)-1].Value
		}
	}
	return last
}

func (m *Metrics) Print() string {
	last := m.Last()
	paths := make([]string, 0, len(last))
	for path := range last {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	builder := strings.Builder{}
	for _, path := range paths {
		builder.WriteString(fmt.Sprintf("%s %s\n", path, humanize.Comma(last[path])))
	}
	return builder.String()
}

func (m *Metrics) register(c Collectable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, c)
}

func (m *Metrics) NewCounter(path string) *Counter {
	c := &Counter{path: path}
	m.register(c)
	return c
}

func (m *Metrics) NewGauge(path string) *Gauge {
	g := &Gauge{path: path}
	m.register(g)
	return g
}

type Counter struct {
	path  string
	count int64
}

func (c *Counter) Inc() {
	atomic.AddInt64(&c.count, 1)
}

func (c *Counter) Add(n int64) {
	atomic.AddInt64(&c.count, n)
}

func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.count)
}

func (c *Counter) Collect() MetricPoint {
	return MetricPoint{
		Time:  time.Now().Unix(),
		Value: c.Value(),
		Path:  c.path,
	}
}

type Gauge struct {
	path  string
	value int64
}

func (g *Gauge) Set(v int64) {
	atomic.StoreInt64(&g.value, v)
}

func (g *Gauge) Value() int64 {
	return atomic.LoadInt64(&g.value)
}

func (g *Gauge) Collect() MetricPoint {
	return MetricPoint{
		Time:  time.Now().Unix(),
		Value: g.Value(),
		Path:  g.path,
	}
}
