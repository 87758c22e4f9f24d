package coordinator

import (
	"io"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vidctl/internal/surface"
	"github.com/llehouerou/vidctl/internal/timers"
)

type harness struct {
	mu       sync.Mutex
	inline   *surface.Mock
	full     *surface.Mock
	c        *Coordinator
	settled  []surface.Slot
	attached []surface.Slot
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newHarness(reportsReady bool) *harness {
	h := &harness{
		inline: surface.NewMock(reportsReady),
		full:   surface.NewMock(reportsReady),
	}
	h.c = New(h.inline, h.full, timers.New(&h.mu), Config{
		Listener: func(slot surface.Slot) surface.Listener {
			h.attached = append(h.attached, slot)
			return nopListener{}
		},
		OnSettled: func(slot surface.Slot) { h.settled = append(h.settled, slot) },
		Logger:    quietLogger(),
	})
	return h
}

func (h *harness) do(fn func(c *Coordinator)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.c)
}

func (h *harness) settledSlots() []surface.Slot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]surface.Slot(nil), h.settled...)
}

type nopListener struct{}

func (nopListener) OnLoad(time.Duration)     {}
func (nopListener) OnProgress(time.Duration) {}
func (nopListener) OnBuffer(bool)            {}
func (nopListener) OnError(error)            {}

func TestNew_AttachesListeners(t *testing.T) {
	h := newHarness(false)
	assert.Equal(t, []surface.Slot{surface.Inline, surface.Fullscreen}, h.attached)
	assert.True(t, h.inline.HasListener())
	assert.True(t, h.full.HasListener())
	assert.Equal(t, surface.Inline, h.c.Active())
}

func TestLoad_SettlesAfterDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(false)
		h.do(func(c *Coordinator) { c.Load("a", 30*time.Second) })

		assert.Equal(t, []string{"a"}, h.inline.Loads())
		assert.True(t, h.inline.Paused())
		assert.Empty(t, h.inline.SeekCalls())
		h.do(func(c *Coordinator) { assert.True(t, c.Settling(surface.Inline)) })

		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, []time.Duration{30 * time.Second}, h.inline.SeekCalls())
		assert.Equal(t, []surface.Slot{surface.Inline}, h.settledSlots())
		h.do(func(c *Coordinator) { assert.False(t, c.Settling(surface.Inline)) })
	})
}

func TestLoad_WaitsForReadyWhenReported(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(true)
		h.do(func(c *Coordinator) { c.Load("a", 5*time.Second) })

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, h.inline.SeekCalls())

		h.do(func(c *Coordinator) { c.Ready(surface.Inline) })
		assert.Equal(t, []time.Duration{5 * time.Second}, h.inline.SeekCalls())
		assert.Equal(t, []surface.Slot{surface.Inline}, h.settledSlots())

		// a second readiness report is ignored
		h.do(func(c *Coordinator) { c.Ready(surface.Inline) })
		assert.Len(t, h.inline.SeekCalls(), 1)
	})
}

func TestEnterFullscreen_PausesInlineAndSettlesFullscreen(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(false)
		h.do(func(c *Coordinator) {
			c.Load("a", 0)
			c.SetMuted(true)
			c.SetRate(1.5)
		})
		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()
		h.do(func(c *Coordinator) { c.SetPlaying(true) })
		assert.False(t, h.inline.Paused())

		h.do(func(c *Coordinator) { c.EnterFullscreen("a", 40*time.Second) })
		assert.True(t, h.inline.Paused())
		assert.Equal(t, surface.Fullscreen, h.c.Active())
		assert.Equal(t, []string{"a"}, h.full.Loads())
		assert.True(t, h.full.Muted())
		assert.InDelta(t, 1.5, h.full.Rate(), 1e-9)
		assert.True(t, h.full.Paused())

		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []time.Duration{40 * time.Second}, h.full.SeekCalls())
		// no auto-resume
		assert.True(t, h.full.Paused())
	})
}

func TestEnterFullscreen_NoopWhenAlreadyFullscreen(t *testing.T) {
	h := newHarness(false)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		c.EnterFullscreen("a", 0)
		token := c.Transition()
		c.EnterFullscreen("a", time.Second)
		assert.Equal(t, token, c.Transition())
	})
	assert.Len(t, h.full.Loads(), 1)
}

func TestExitFullscreen_KeepsInlineSourceWhenUnchanged(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(true)
		h.do(func(c *Coordinator) {
			c.Load("a", 0)
			c.Ready(surface.Inline)
			c.EnterFullscreen("a", 10*time.Second)
			c.Ready(surface.Fullscreen)
			c.ExitFullscreen("a", 20*time.Second)
		})

		assert.Equal(t, 1, h.full.Unloads())
		assert.False(t, h.full.Loaded())
		assert.Equal(t, []string{"a"}, h.inline.Loads())

		// inline was not reloaded, so it settles on the timer
		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []time.Duration{0, 20 * time.Second}, h.inline.SeekCalls())
	})
}

func TestExitFullscreen_ReloadsInlineWhenSourceChanged(t *testing.T) {
	h := newHarness(true)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		c.Ready(surface.Inline)
		c.EnterFullscreen("a", 0)
		c.Ready(surface.Fullscreen)
		// quality switched while fullscreen, inline only tracked the old uri
		c.ExitFullscreen("b", 7*time.Second)
	})
	assert.Equal(t, []string{"a", "b"}, h.inline.Loads())

	h.do(func(c *Coordinator) { c.Ready(surface.Inline) })
	seeks := h.inline.SeekCalls()
	require.NotEmpty(t, seeks)
	assert.Equal(t, 7*time.Second, seeks[len(seeks)-1])
}

func TestEnterThenExitBeforeSettle_NoStaleSeek(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(false)
		h.do(func(c *Coordinator) { c.Load("a", 0) })
		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()

		h.do(func(c *Coordinator) { c.EnterFullscreen("a", 40*time.Second) })
		time.Sleep(100 * time.Millisecond)
		h.do(func(c *Coordinator) { c.ExitFullscreen("a", 41*time.Second) })

		time.Sleep(time.Second)
		synctest.Wait()

		assert.Empty(t, h.full.SeekCalls())
		assert.Equal(t, []time.Duration{0, 41 * time.Second}, h.inline.SeekCalls())
		assert.Equal(t, surface.Inline, h.c.Active())
	})
}

func TestExitFullscreen_WaitsForInlineStillLoading(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(true)
		h.do(func(c *Coordinator) {
			c.Load("a", 40*time.Second)
			c.EnterFullscreen("a", 40*time.Second)
		})
		time.Sleep(50 * time.Millisecond)
		h.do(func(c *Coordinator) {
			c.ExitFullscreen("a", 40*time.Second)
			assert.False(t, c.Loaded(surface.Inline))
		})

		// the settle delay alone must not seek a surface that has not loaded
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, h.inline.SeekCalls())
		assert.Empty(t, h.settledSlots())

		h.do(func(c *Coordinator) { c.Ready(surface.Inline) })
		assert.Equal(t, []time.Duration{40 * time.Second}, h.inline.SeekCalls())
		assert.Equal(t, []surface.Slot{surface.Inline}, h.settledSlots())
		assert.Equal(t, []string{"a"}, h.inline.Loads())
	})
}

func TestExitFullscreen_WaitsForInlineReloadedBySwitch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(true)
		h.do(func(c *Coordinator) {
			c.Load("480", 0)
			c.Ready(surface.Inline)
			c.EnterFullscreen("480", 40*time.Second)
			c.Ready(surface.Fullscreen)
			c.SwitchQuality("720", 41*time.Second)
		})
		time.Sleep(50 * time.Millisecond)
		h.do(func(c *Coordinator) { c.ExitFullscreen("720", 41*time.Second) })

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, []time.Duration{0}, h.inline.SeekCalls())
		assert.Equal(t, []string{"480", "720"}, h.inline.Loads())

		h.do(func(c *Coordinator) { c.Ready(surface.Inline) })
		assert.Equal(t, 41*time.Second, last(h.inline.SeekCalls()))
	})
}

func TestLoaded_ClearedOnRemount(t *testing.T) {
	h := newHarness(true)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		assert.False(t, c.Loaded(surface.Inline))
		c.Ready(surface.Inline)
		assert.True(t, c.Loaded(surface.Inline))

		c.SwitchQuality("b", 0)
		assert.False(t, c.Loaded(surface.Inline))

		// a load report for an unmounted slot is ignored
		c.Ready(surface.Fullscreen)
		assert.False(t, c.Loaded(surface.Fullscreen))
	})
}

func TestQualitySwitchInterleavedWithFullscreen(t *testing.T) {
	tests := []struct {
		name        string
		transitions func(c *Coordinator)
		readies     []surface.Slot
		wantActive  surface.Slot
		wantFull    []time.Duration
		wantInline  time.Duration
	}{
		{
			name: "switch then enter",
			transitions: func(c *Coordinator) {
				c.SwitchQuality("720", 10*time.Second)
				c.EnterFullscreen("720", 11*time.Second)
			},
			readies:    []surface.Slot{surface.Inline, surface.Fullscreen},
			wantActive: surface.Fullscreen,
			wantFull:   []time.Duration{11 * time.Second},
			wantInline: 0,
		},
		{
			name: "enter then switch",
			transitions: func(c *Coordinator) {
				c.EnterFullscreen("480", 10*time.Second)
				c.SwitchQuality("720", 12*time.Second)
			},
			readies:    []surface.Slot{surface.Fullscreen, surface.Inline},
			wantActive: surface.Fullscreen,
			wantFull:   []time.Duration{12 * time.Second},
			wantInline: 12 * time.Second,
		},
		{
			name: "switch then exit",
			transitions: func(c *Coordinator) {
				c.EnterFullscreen("480", 10*time.Second)
				c.Ready(surface.Fullscreen)
				c.SwitchQuality("720", 12*time.Second)
				c.ExitFullscreen("720", 13*time.Second)
			},
			readies:    []surface.Slot{surface.Fullscreen, surface.Inline},
			wantActive: surface.Inline,
			wantFull:   []time.Duration{10 * time.Second},
			wantInline: 13 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				h := newHarness(true)
				h.do(func(c *Coordinator) {
					c.Load("480", 0)
					c.Ready(surface.Inline)
					tt.transitions(c)
				})
				inlineBefore := len(h.inline.SeekCalls())

				time.Sleep(time.Second)
				synctest.Wait()
				assert.Len(t, h.inline.SeekCalls(), inlineBefore, "no seek before the load report")

				h.do(func(c *Coordinator) {
					for _, slot := range tt.readies {
						c.Ready(slot)
					}
				})
				assert.Equal(t, tt.wantActive, h.c.Active())
				assert.Equal(t, tt.wantFull, h.full.SeekCalls())
				assert.Equal(t, tt.wantInline, last(h.inline.SeekCalls()))
			})
		})
	}
}

func TestStaleReadyIsDiscarded(t *testing.T) {
	h := newHarness(true)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		c.Ready(surface.Inline)
		c.EnterFullscreen("a", 5*time.Second)
		c.ExitFullscreen("a", 6*time.Second)
		// fullscreen load event arrives after it was unmounted
		c.Ready(surface.Fullscreen)
	})
	assert.Empty(t, h.full.SeekCalls())
}

func TestSwitchQuality_ReloadsEveryMountedSurface(t *testing.T) {
	h := newHarness(true)
	h.do(func(c *Coordinator) {
		c.Load("480", 0)
		c.Ready(surface.Inline)
		c.EnterFullscreen("480", 10*time.Second)
		c.Ready(surface.Fullscreen)
		c.SwitchQuality("720", 12*time.Second)
	})
	assert.Equal(t, []string{"480", "720"}, h.inline.Loads())
	assert.Equal(t, []string{"480", "720"}, h.full.Loads())

	h.do(func(c *Coordinator) {
		assert.True(t, c.Settling(surface.Inline))
		assert.True(t, c.Settling(surface.Fullscreen))
		c.Ready(surface.Fullscreen)
		c.Ready(surface.Inline)
	})
	assert.Equal(t, 12*time.Second, last(h.full.SeekCalls()))
	assert.Equal(t, 12*time.Second, last(h.inline.SeekCalls()))
}

func TestSeek_RetargetsPendingSettle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(false)
		h.do(func(c *Coordinator) {
			c.Load("a", 10*time.Second)
			c.Seek(50 * time.Second)
		})
		assert.Empty(t, h.inline.SeekCalls())

		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()
		assert.Equal(t, []time.Duration{50 * time.Second}, h.inline.SeekCalls())

		h.do(func(c *Coordinator) { c.Seek(60 * time.Second) })
		assert.Equal(t, []time.Duration{50 * time.Second, 60 * time.Second}, h.inline.SeekCalls())
	})
}

func TestSetPlaying_IgnoredWhileSettling(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(false)
		h.do(func(c *Coordinator) {
			c.Load("a", 0)
			c.SetPlaying(true)
		})
		assert.True(t, h.inline.Paused())

		time.Sleep(DefaultSettleDelay + time.Millisecond)
		synctest.Wait()
		h.do(func(c *Coordinator) { c.SetPlaying(true) })
		assert.False(t, h.inline.Paused())
	})
}

func TestSetRepeat_AppliesToMountedAndFutureMounts(t *testing.T) {
	h := newHarness(false)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		c.SetRepeat(true)
	})
	assert.True(t, h.inline.Repeat())
	assert.False(t, h.full.Repeat())

	h.do(func(c *Coordinator) { c.EnterFullscreen("a", 0) })
	assert.True(t, h.full.Repeat())
}

func TestRetry_RemountsActive(t *testing.T) {
	h := newHarness(true)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		c.Retry("a", 9*time.Second)
		c.Ready(surface.Inline)
	})
	assert.Equal(t, []string{"a", "a"}, h.inline.Loads())
	assert.Equal(t, []time.Duration{9 * time.Second}, h.inline.SeekCalls())
}

func TestClose_UnloadsAndDetaches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(false)
		h.do(func(c *Coordinator) {
			c.Load("a", 0)
			c.EnterFullscreen("a", 0)
			c.Close()
		})
		time.Sleep(time.Second)
		synctest.Wait()

		assert.False(t, h.inline.Loaded())
		assert.False(t, h.full.Loaded())
		assert.False(t, h.inline.HasListener())
		assert.False(t, h.full.HasListener())
		assert.Empty(t, h.settledSlots())
	})
}

func TestUnload_KeepsListeners(t *testing.T) {
	h := newHarness(false)
	h.do(func(c *Coordinator) {
		c.Load("a", 0)
		c.EnterFullscreen("a", 0)
		c.Unload()
		assert.Equal(t, surface.Inline, c.Active())
		assert.False(t, c.Settling(surface.Fullscreen))
	})
	assert.False(t, h.inline.Loaded())
	assert.False(t, h.full.Loaded())
	assert.True(t, h.inline.HasListener())
}

func last(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return -1
	}
	return d[len(d)-1]
}
