// Package convert is the currency converter widget.
package convert

import (
	"sparkwidgets/hal"
	muxclient "sparkwidgets/sparkos/client/consolemux"
	logclient "sparkwidgets/sparkos/client/logger"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/internal/keys"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
	"sparkwidgets/sparkos/tasks/convert/rates"
)

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	table  *rates.Table

	s *gfx.Surface

	active bool
	muxCap kernel.Capability

	sess *Session
	dec  keys.Decoder
}

// New returns the converter task. A nil table uses the built-in rates.
func New(disp hal.Display, ep, logCap kernel.Capability, table *rates.Table) *Task {
	if table == nil {
		table = rates.Default()
	}
	return &Task{disp: disp, ep: ep, logCap: logCap, table: table}
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
	t.reset()

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
			if !ok || appID != proto.AppConvert {
				continue
			}
			if arg != "" {
				t.sess.Script(arg)
				t.logResult(ctx)
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

func (t *Task) reset() {
	t.sess = NewSession(NewConverter(t.table))
	t.dec.Reset()
}

func (t *Task) setActive(active bool) {
	if active == t.active {
		return
	}
	t.active = active
	if !active {
		t.reset()
		return
	}
	t.render()
}

func (t *Task) handleInput(ctx *kernel.Context, b []byte) {
	t.dec.Feed(b, func(k keys.Key) bool {
		quit, converted := t.sess.do(actionForKey(k))
		if converted {
			t.logResult(ctx)
		}
		if quit {
			t.requestExit(ctx)
			return false
		}
		return true
	})
}

func (t *Task) logResult(ctx *kernel.Context) {
	c := t.sess.Converter
	switch c.Result() {
	case "":
		return
	case ErrorText:
		logclient.Logf(ctx, t.logCap, "convert: %s -> %s: no rate", c.From(), c.To())
	default:
		logclient.Logf(ctx, t.logCap, "convert: %s %s = %s %s", c.Amount(), c.From(), c.Result(), c.To())
	}
}

func (t *Task) requestExit(ctx *kernel.Context) {
	t.active = false
	t.reset()
	if !t.muxCap.Valid() {
		return
	}
	if err := muxclient.Exit(ctx, t.muxCap); err != nil {
		logclient.Log(ctx, t.logCap, "convert: "+err.Error())
	}
}
