package timer

import (
	"testing"
	"time"

	"sparkwidgets/hal"
	"sparkwidgets/sparkos/gfx"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

type chanTask struct {
	to   kernel.Capability
	msgs <-chan []byte
	kind proto.Kind
}

func (t *chanTask) Run(ctx *kernel.Context) {
	for b := range t.msgs {
		ctx.SendToCapRetry(t.to, uint16(t.kind), b, kernel.Capability{}, 100)
	}
}

type recvTask struct {
	cap kernel.Capability
	out chan<- string
}

func (t *recvTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.cap)
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- string(msg.Payload())
	}
}

func TestTaskLogsFinishedCountdown(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	logs := make(chan string, 4)
	selects := make(chan []byte, 1)
	k.AddTask(New(nil, ep.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend)))
	k.AddTask(&recvTask{cap: logEP.Restrict(kernel.RightRecv), out: logs})
	k.AddTask(&chanTask{to: ep.Restrict(kernel.RightSend), msgs: selects, kind: proto.MsgAppSelect})
	defer close(selects)

	// Seconds field, 2, set, start.
	selects <- proto.AppSelectPayload(proto.AppTimer, "\x1b[C\x1b[C2s ")

	deadline := time.Now().Add(2 * time.Second)
	var tick uint64
	for {
		tick += 100
		k.TickTo(tick)
		select {
		case line := <-logs:
			if line != "timer: finished" {
				t.Fatalf("log = %q", line)
			}
			if tick < 2000 {
				t.Fatalf("finished after %d ticks, want at least 2000", tick)
			}
			return
		case <-time.After(time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatal("countdown never finished")
		}
	}
}

func TestRenderOnlyWhenActive(t *testing.T) {
	fb := hal.NewMemFramebuffer(320, 320)
	blank := fb.Checksum()
	task := &Task{s: gfx.NewSurface(fb), clock: NewClock()}

	task.render()
	if fb.Checksum() != blank {
		t.Fatal("inactive timer drew to the framebuffer")
	}
	if task.shown != "00:00:00" {
		t.Fatalf("shown = %q", task.shown)
	}

	task.active = true
	task.render()
	first := fb.Checksum()
	if first == blank {
		t.Fatal("active timer did not draw")
	}

	task.clock.Toggle()
	task.clock.Advance(1000)
	task.render()
	if fb.Checksum() == first {
		t.Fatal("frame unchanged after a second elapsed")
	}
}
