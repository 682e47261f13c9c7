// Package calc is the calculator widget: an immediate-execution accumulator with
// memory, unary functions and a short history, driven from the keyboard.
package calc

import (
	"sparkwidgets/hal"
	muxclient "sparkwidgets/sparkos/client/consolemux"
	logclient "sparkwidgets/sparkos/client/logger"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/internal/keys"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

// Task owns one calculator session. All state changes happen on the task goroutine,
// one input message at a time.
type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability

	s *gfx.Surface

	active bool
	muxCap kernel.Capability

	state *State
	pad   keypad
	dec   keys.Decoder
}

func New(disp hal.Display, ep, logCap kernel.Capability) *Task {
	return &Task{disp: disp, ep: ep, logCap: logCap}
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
	t.resetSession()

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppControl:
			if msg.Cap.Valid() {
				t.muxCap = msg.Cap
			}
			active, ok := proto.DecodeAppControlPayload(msg.Payload())
			if !ok {
				continue
			}
			t.setActive(active)

		case proto.MsgAppSelect:
			appID, arg, ok := proto.DecodeAppSelectPayload(msg.Payload())
			if !ok || appID != proto.AppCalc {
				continue
			}
			if arg != "" {
				for _, c := range Script(t.state, arg) {
					t.logComputation(ctx, c)
				}
			}
			t.render()

		case proto.MsgTermInput:
			if !t.active {
				continue
			}
			t.handleInput(ctx, msg.Payload())
			t.render()
		}
	}
}

func (t *Task) setActive(active bool) {
	if active == t.active {
		return
	}
	t.active = active
	if !active {
		// Leaving the widget ends the session.
		t.resetSession()
		return
	}
	t.render()
}

func (t *Task) resetSession() {
	t.state = NewState()
	t.pad = keypad{row: 5, idx: 3} // "="
	t.dec.Reset()
}

func (t *Task) handleInput(ctx *kernel.Context, b []byte) {
	t.dec.Feed(b, func(k keys.Key) bool {
		t.handleCommand(ctx, commandForKey(k))
		return t.active
	})
}

func (t *Task) handleCommand(ctx *kernel.Context, cmd command) {
	switch cmd.kind {
	case cmdEvent:
		t.apply(ctx, cmd.ev)
	case cmdPress:
		t.apply(ctx, t.pad.focused().ev)
	case cmdFocus:
		t.pad.move(cmd.dx, cmd.dy)
	case cmdQuit:
		t.requestExit(ctx)
	}
}

func (t *Task) apply(ctx *kernel.Context, ev Event) {
	if c, ok := t.state.Apply(ev); ok {
		t.logComputation(ctx, c)
	}
}

func (t *Task) logComputation(ctx *kernel.Context, c Computation) {
	logclient.Log(ctx, t.logCap, "calc: "+c.String())
}

// requestExit hands focus back to the console mux.
func (t *Task) requestExit(ctx *kernel.Context) {
	t.active = false
	t.resetSession()
	if !t.muxCap.Valid() {
		return
	}
	if err := muxclient.Exit(ctx, t.muxCap); err != nil {
		logclient.Log(ctx, t.logCap, "calc: "+err.Error())
	}
}
