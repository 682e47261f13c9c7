package consolemux

import (
	"testing"
	"time"

	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

const testTimeout = 1 * time.Second

type sendReq struct {
	kind    proto.Kind
	payload []byte
	done    chan<- kernel.SendResult
}

type senderTask struct {
	to   kernel.Capability
	reqs <-chan sendReq
}

func (t *senderTask) Run(ctx *kernel.Context) {
	for req := range t.reqs {
		res := ctx.SendToCapResult(t.to, uint16(req.kind), req.payload, kernel.Capability{})
		req.done <- res
	}
}

type recvTask struct {
	cap kernel.Capability
	out chan<- kernel.Message
}

func (t *recvTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.cap)
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- msg
	}
}

type serviceTask struct {
	svc *Service
}

func (t *serviceTask) Run(ctx *kernel.Context) {
	t.svc.Run(ctx)
}

func recvWithTimeout[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for message")
		var zero T
		return zero
	}
}

func sendTo(t *testing.T, ch chan<- sendReq, kind proto.Kind, payload []byte) {
	t.Helper()
	done := make(chan kernel.SendResult, 1)
	ch <- sendReq{kind: kind, payload: payload, done: done}
	res := recvWithTimeout(t, done)
	if res != kernel.SendOK {
		t.Fatalf("send %s: %s", kind, res)
	}
}

func expectControl(t *testing.T, ch <-chan kernel.Message, want bool, wantCap kernel.Capability) {
	t.Helper()
	msg := recvWithTimeout(t, ch)
	if proto.Kind(msg.Kind) != proto.MsgAppControl {
		t.Fatalf("expected MsgAppControl, got %s", proto.Kind(msg.Kind))
	}
	active, ok := proto.DecodeAppControlPayload(msg.Payload())
	if !ok || active != want {
		t.Fatalf("expected active=%v, got active=%v ok=%v", want, active, ok)
	}
	if msg.Cap != wantCap {
		t.Fatalf("transferred cap = %s, want %s", msg.Cap, wantCap)
	}
}

func expectInput(t *testing.T, ch <-chan kernel.Message, want string) {
	t.Helper()
	msg := recvWithTimeout(t, ch)
	if proto.Kind(msg.Kind) != proto.MsgTermInput {
		t.Fatalf("expected MsgTermInput, got %s", proto.Kind(msg.Kind))
	}
	if got := string(msg.Payload()); got != want {
		t.Fatalf("expected payload %q, got %q", want, got)
	}
}

func expectSelect(t *testing.T, ch <-chan kernel.Message, want proto.AppID, wantArg string) {
	t.Helper()
	msg := recvWithTimeout(t, ch)
	if proto.Kind(msg.Kind) != proto.MsgAppSelect {
		t.Fatalf("expected MsgAppSelect, got %s", proto.Kind(msg.Kind))
	}
	id, arg, ok := proto.DecodeAppSelectPayload(msg.Payload())
	if !ok || id != want || arg != wantArg {
		t.Fatalf("select = %s,%q,%v, want %s,%q", id, arg, ok, want, wantArg)
	}
}

type muxHarness struct {
	muxCtl     kernel.Capability
	reqs       chan sendReq
	homeOut    chan kernel.Message
	calcOut    chan kernel.Message
	convertOut chan kernel.Message
}

func startMux(t *testing.T) *muxHarness {
	t.Helper()
	k := kernel.New()

	muxEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	homeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	convertEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	h := &muxHarness{
		muxCtl:     muxEP.Restrict(kernel.RightSend),
		reqs:       make(chan sendReq, 16),
		homeOut:    make(chan kernel.Message, 16),
		calcOut:    make(chan kernel.Message, 16),
		convertOut: make(chan kernel.Message, 16),
	}
	if !h.muxCtl.Valid() {
		t.Fatal("expected valid capabilities")
	}

	svc := New(
		muxEP.Restrict(kernel.RightRecv),
		h.muxCtl,
		kernel.Capability{},
		homeEP.Restrict(kernel.RightSend),
		map[proto.AppID]kernel.Capability{
			proto.AppCalc:    calcEP.Restrict(kernel.RightSend),
			proto.AppConvert: convertEP.Restrict(kernel.RightSend),
		},
	)
	k.AddTask(&serviceTask{svc: svc})
	k.AddTask(&recvTask{cap: homeEP.Restrict(kernel.RightRecv), out: h.homeOut})
	k.AddTask(&recvTask{cap: calcEP.Restrict(kernel.RightRecv), out: h.calcOut})
	k.AddTask(&recvTask{cap: convertEP.Restrict(kernel.RightRecv), out: h.convertOut})
	k.AddTask(&senderTask{to: h.muxCtl, reqs: h.reqs})
	return h
}

func (h *muxHarness) open(t *testing.T, id proto.AppID, out <-chan kernel.Message) {
	t.Helper()
	sendTo(t, h.reqs, proto.MsgAppSelect, proto.AppSelectPayload(id, ""))
	expectSelect(t, out, id, "")
	sendTo(t, h.reqs, proto.MsgAppControl, proto.AppControlPayload(true))
	expectControl(t, out, true, h.muxCtl)
	expectControl(t, h.homeOut, false, kernel.Capability{})
}

func TestHomeHasFocusByDefault(t *testing.T) {
	h := startMux(t)

	sendTo(t, h.reqs, proto.MsgTermInput, []byte("hello"))
	expectInput(t, h.homeOut, "hello")

	// Ctrl+G at home is swallowed.
	sendTo(t, h.reqs, proto.MsgTermInput, []byte{interruptByte, 'a'})
	expectInput(t, h.homeOut, "a")

	// Activation without a selected app is ignored.
	sendTo(t, h.reqs, proto.MsgAppControl, proto.AppControlPayload(true))
	sendTo(t, h.reqs, proto.MsgTermInput, []byte("b"))
	expectInput(t, h.homeOut, "b")
}

func TestSelectActivateAndExit(t *testing.T) {
	h := startMux(t)
	h.open(t, proto.AppCalc, h.calcOut)

	sendTo(t, h.reqs, proto.MsgTermInput, []byte("12+"))
	expectInput(t, h.calcOut, "12+")

	// The widget hands focus back through the transferred control capability.
	sendTo(t, h.reqs, proto.MsgAppControl, proto.AppControlPayload(false))
	expectControl(t, h.calcOut, false, kernel.Capability{})
	expectControl(t, h.homeOut, true, kernel.Capability{})

	sendTo(t, h.reqs, proto.MsgTermInput, []byte("x"))
	expectInput(t, h.homeOut, "x")
}

func TestCtrlGReturnsHome(t *testing.T) {
	h := startMux(t)
	h.open(t, proto.AppCalc, h.calcOut)

	sendTo(t, h.reqs, proto.MsgTermInput, []byte{'7', interruptByte, 'y'})
	expectInput(t, h.calcOut, "7")
	expectControl(t, h.calcOut, false, kernel.Capability{})
	expectControl(t, h.homeOut, true, kernel.Capability{})
	expectInput(t, h.homeOut, "y")
}

func TestSelectOtherAppWhileActive(t *testing.T) {
	h := startMux(t)
	h.open(t, proto.AppCalc, h.calcOut)

	// Unknown widgets are ignored and focus stays put.
	sendTo(t, h.reqs, proto.MsgAppSelect, proto.AppSelectPayload(proto.AppTimer, ""))
	sendTo(t, h.reqs, proto.MsgTermInput, []byte("1"))
	expectInput(t, h.calcOut, "1")

	sendTo(t, h.reqs, proto.MsgAppSelect, proto.AppSelectPayload(proto.AppConvert, "EUR"))
	expectControl(t, h.calcOut, false, kernel.Capability{})
	expectControl(t, h.homeOut, true, kernel.Capability{})
	expectSelect(t, h.convertOut, proto.AppConvert, "EUR")

	sendTo(t, h.reqs, proto.MsgAppControl, proto.AppControlPayload(true))
	expectControl(t, h.convertOut, true, h.muxCtl)
	expectControl(t, h.homeOut, false, kernel.Capability{})

	sendTo(t, h.reqs, proto.MsgTermInput, []byte("5"))
	expectInput(t, h.convertOut, "5")
}
