package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/vidctl/internal/cue"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/gesture"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Current: State{Playing: true}})
		sub.sendPosition(PositionChange{Position: 30 * time.Second})
		sub.sendGesture(GestureEvent{Gesture: gesture.Event{Kind: gesture.DoubleTap}})
		sub.sendCue(CueEvent{Cue: cue.Cue{Kind: cue.Like}})
		sub.sendError(ErrorEvent{Operation: errmsg.OpPlaybackRun, Err: errors.New("x")})

		e := <-sub.StateChanged
		if !e.Current.Playing {
			t.Error("StateChanged.Current.Playing = false, want true")
		}

		pos := <-sub.PositionChanged
		if pos.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", pos.Position)
		}

		g := <-sub.GestureRecognized
		if g.Gesture.Kind != gesture.DoubleTap {
			t.Errorf("GestureRecognized.Kind = %v, want DoubleTap", g.Gesture.Kind)
		}

		c := <-sub.CueTriggered
		if c.Cue.Kind != cue.Like {
			t.Errorf("CueTriggered.Kind = %v, want Like", c.Cue.Kind)
		}

		er := <-sub.Error
		if er.Operation != errmsg.OpPlaybackRun {
			t.Errorf("Error.Operation = %q, want %q", er.Operation, errmsg.OpPlaybackRun)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	// Fill buffer
	for range eventBufferSize + 5 {
		sub.sendState(StateChange{})
	}

	// Should not block or panic - count what we got
	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
