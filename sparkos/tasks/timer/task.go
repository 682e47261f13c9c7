// Package timer is the stopwatch / countdown widget.
//
// The clock keeps running while another widget has focus; a finished countdown is
// logged either way.
package timer

import (
	"sparkwidgets/hal"
	muxclient "sparkwidgets/sparkos/client/consolemux"
	logclient "sparkwidgets/sparkos/client/logger"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/internal/keys"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability

	s *gfx.Surface

	active bool
	muxCap kernel.Capability

	clock    *Clock
	lastTick uint64
	shown    string
	dec      keys.Decoder
}

func New(disp hal.Display, ep, logCap kernel.Capability) *Task {
	return &Task{disp: disp, ep: ep, logCap: logCap, clock: NewClock()}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp != nil {
		if fb := t.disp.Framebuffer(); fb != nil {
			t.s = gfx.NewSurface(fb)
		}
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 16)
	t.lastTick = ctx.NowTick()
	go func(last uint64) {
		for {
			select {
			case <-done:
				return
			default:
			}
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}(t.lastTick)

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			t.handleMessage(ctx, msg)
		case tick := <-tickCh:
			t.advance(ctx, tick)
		}
	}
}

func (t *Task) handleMessage(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgAppControl:
		if msg.Cap.Valid() {
			t.muxCap = msg.Cap
		}
		active, ok := proto.DecodeAppControlPayload(msg.Payload())
		if !ok || active == t.active {
			return
		}
		t.active = active
		t.dec.Reset()
		t.render()

	case proto.MsgAppSelect:
		appID, arg, ok := proto.DecodeAppSelectPayload(msg.Payload())
		if !ok || appID != proto.AppTimer {
			return
		}
		t.dec.Feed([]byte(arg), func(k keys.Key) bool {
			handleKey(t.clock, k)
			return true
		})
		t.dec.Reset()
		t.render()

	case proto.MsgTermInput:
		if !t.active {
			return
		}
		t.dec.Feed(msg.Payload(), func(k keys.Key) bool {
			if handleKey(t.clock, k) == outQuit {
				t.requestExit(ctx)
				return false
			}
			return true
		})
		t.render()
	}
}

func (t *Task) advance(ctx *kernel.Context, tick uint64) {
	if tick <= t.lastTick {
		return
	}
	d := tick - t.lastTick
	t.lastTick = tick
	if t.clock.Advance(d) {
		logclient.Log(ctx, t.logCap, "timer: finished")
	}
	if t.clock.Text() != t.shown {
		t.render()
	}
}

func (t *Task) requestExit(ctx *kernel.Context) {
	t.active = false
	t.dec.Reset()
	if !t.muxCap.Valid() {
		return
	}
	if err := muxclient.Exit(ctx, t.muxCap); err != nil {
		logclient.Log(ctx, t.logCap, "timer: "+err.Error())
	}
}
