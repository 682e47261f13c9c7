// Package home is the launcher shown whenever no widget has focus.
package home

import (
	"sparkwidgets/hal"
	muxclient "sparkwidgets/sparkos/client/consolemux"
	logclient "sparkwidgets/sparkos/client/logger"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/internal/keys"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

// Task lists the widgets and opens the chosen one through the console mux.
type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	muxCap kernel.Capability

	s *gfx.Surface

	active bool
	sel    int
	dec    keys.Decoder

	initial    proto.AppID
	initialArg string
}

func New(disp hal.Display, ep, logCap, muxCap kernel.Capability) *Task {
	return &Task{disp: disp, ep: ep, logCap: logCap, muxCap: muxCap, active: true}
}

// OpenAtStart makes the launcher open id right after boot, passing arg to the widget.
func (t *Task) OpenAtStart(id proto.AppID, arg string) {
	t.initial = id
	t.initialArg = arg
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
	t.render()

	if t.initial != proto.AppNone {
		t.open(ctx, t.initial, t.initialArg)
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppControl:
			active, ok := proto.DecodeAppControlPayload(msg.Payload())
			if !ok || active == t.active {
				continue
			}
			t.active = active
			t.dec.Reset()
			t.render()

		case proto.MsgTermInput:
			if !t.active {
				continue
			}
			t.dec.Feed(msg.Payload(), func(k keys.Key) bool {
				if id, ok := t.handleKey(k); ok {
					t.open(ctx, id, "")
					return false
				}
				return true
			})
			t.render()
		}
	}
}

// handleKey moves the selection and reports the widget to open, if any.
func (t *Task) handleKey(k keys.Key) (proto.AppID, bool) {
	n := len(proto.Apps)
	switch k.Kind {
	case keys.Up:
		t.sel = (t.sel + n - 1) % n
	case keys.Down, keys.Tab:
		t.sel = (t.sel + 1) % n
	case keys.Enter:
		return proto.Apps[t.sel], true
	case keys.Rune:
		if i := int(k.R - '1'); i >= 0 && i < n {
			t.sel = i
			return proto.Apps[i], true
		}
	}
	return proto.AppNone, false
}

func (t *Task) open(ctx *kernel.Context, id proto.AppID, arg string) {
	if err := muxclient.Open(ctx, t.muxCap, id, arg); err != nil {
		logclient.Log(ctx, t.logCap, "home: "+err.Error())
	}
}
