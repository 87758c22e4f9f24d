// internal/surface/mock.go
package surface

import (
	"sync"
	"time"
)

// Mock is a test double for Handle.
type Mock struct {
	mu sync.Mutex

	listener     Listener
	reportsReady bool

	uri     string
	loaded  bool
	paused  bool
	muted   bool
	repeat  bool
	rate    float64
	loads   []string
	seeks   []time.Duration
	unloads int
}

// NewMock creates a mock surface. reportsReady controls whether the engine
// waits for OnLoad before settling a freshly loaded source.
func NewMock(reportsReady bool) *Mock {
	return &Mock{
		reportsReady: reportsReady,
		paused:       true,
		rate:         1,
	}
}

func (m *Mock) SetListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
}

func (m *Mock) Load(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uri = uri
	m.loaded = true
	m.loads = append(m.loads, uri)
}

func (m *Mock) Unload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uri = ""
	m.loaded = false
	m.unloads++
}

func (m *Mock) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = paused
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) SetRepeat(repeat bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repeat = repeat
}

func (m *Mock) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}

func (m *Mock) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, position)
}

func (m *Mock) ReportsReady() bool { return m.reportsReady }

// Test helpers

func (m *Mock) URI() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uri
}

func (m *Mock) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mock) Repeat() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repeat
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seeks...)
}

func (m *Mock) Unloads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unloads
}

func (m *Mock) HasListener() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener != nil
}

// EmitLoad simulates the surface reporting its duration.
func (m *Mock) EmitLoad(d time.Duration) {
	if l := m.currentListener(); l != nil {
		l.OnLoad(d)
	}
}

// EmitProgress simulates a progress tick.
func (m *Mock) EmitProgress(pos time.Duration) {
	if l := m.currentListener(); l != nil {
		l.OnProgress(pos)
	}
}

// EmitBuffer simulates a buffering change.
func (m *Mock) EmitBuffer(buffering bool) {
	if l := m.currentListener(); l != nil {
		l.OnBuffer(buffering)
	}
}

// EmitError simulates a decode/load failure.
func (m *Mock) EmitError(err error) {
	if l := m.currentListener(); l != nil {
		l.OnError(err)
	}
}

func (m *Mock) currentListener() Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

// Verify Mock implements Handle at compile time.
var (
	_ Handle        = (*Mock)(nil)
	_ ReadyReporter = (*Mock)(nil)
)
