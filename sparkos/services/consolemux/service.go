package consolemux

import (
	logclient "sparkwidgets/sparkos/client/logger"
	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

// interruptByte returns focus to the home page from any widget.
const interruptByte = 0x07 // Ctrl+G

// Service routes keyboard input to whichever of home or the selected widget has focus.
//
// Home and the widgets drive focus with MsgAppSelect and MsgAppControl sent to the
// control capability. An activated widget receives that capability in Message.Cap so it
// can hand focus back on its own.
type Service struct {
	inCap  kernel.Capability
	ctlCap kernel.Capability
	logCap kernel.Capability

	homeCap kernel.Capability
	apps    map[proto.AppID]kernel.Capability

	activeApp proto.AppID
	appActive bool
}

func New(inCap, ctlCap, logCap, homeCap kernel.Capability, apps map[proto.AppID]kernel.Capability) *Service {
	return &Service{
		inCap:   inCap,
		ctlCap:  ctlCap,
		logCap:  logCap,
		homeCap: homeCap,
		apps:    apps,
	}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.inCap)
	if !ok {
		return
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgTermInput:
			s.handleInput(ctx, msg.Payload())
		case proto.MsgAppControl:
			active, ok := proto.DecodeAppControlPayload(msg.Payload())
			if !ok {
				continue
			}
			s.setActive(ctx, active)
		case proto.MsgAppSelect:
			appID, arg, ok := proto.DecodeAppSelectPayload(msg.Payload())
			if !ok {
				continue
			}
			s.handleAppSelect(ctx, appID, arg)
		}
	}
}

func (s *Service) handleInput(ctx *kernel.Context, b []byte) {
	start := 0
	for i := 0; i < len(b); i++ {
		if b[i] != interruptByte {
			continue
		}
		s.flushInput(ctx, b[start:i])
		start = i + 1
		s.setActive(ctx, false)
	}
	s.flushInput(ctx, b[start:])
}

func (s *Service) flushInput(ctx *kernel.Context, b []byte) {
	if len(b) == 0 {
		return
	}
	dst := s.homeCap
	if s.appActive {
		dst = s.selectedAppCap()
	}
	_ = sendWithRetry(ctx, dst, proto.MsgTermInput, b, kernel.Capability{})
}

func (s *Service) setActive(ctx *kernel.Context, active bool) {
	if active == s.appActive {
		return
	}
	if active && !s.selectedAppCap().Valid() {
		return
	}
	s.appActive = active

	appCap := s.selectedAppCap()
	var xfer kernel.Capability
	if s.appActive && s.ctlCap.Valid() {
		xfer = s.ctlCap
	}
	_ = sendWithRetry(ctx, appCap, proto.MsgAppControl, proto.AppControlPayload(active), xfer)
	_ = sendWithRetry(ctx, s.homeCap, proto.MsgAppControl, proto.AppControlPayload(!active), kernel.Capability{})

	if active {
		logclient.Logf(ctx, s.logCap, "mux: focus %s", s.activeApp)
	} else {
		logclient.Log(ctx, s.logCap, "mux: focus home")
	}
}

func (s *Service) handleAppSelect(ctx *kernel.Context, id proto.AppID, arg string) {
	appCap := s.appCapByID(id)
	if !appCap.Valid() {
		logclient.Logf(ctx, s.logCap, "mux: select %s: no such app", id)
		return
	}
	if s.appActive && id != s.activeApp {
		s.setActive(ctx, false)
	}
	s.activeApp = id
	_ = sendWithRetry(ctx, appCap, proto.MsgAppSelect, proto.AppSelectPayload(id, arg), kernel.Capability{})
}

func (s *Service) selectedAppCap() kernel.Capability {
	return s.appCapByID(s.activeApp)
}

func (s *Service) appCapByID(id proto.AppID) kernel.Capability {
	if id == proto.AppNone {
		return kernel.Capability{}
	}
	return s.apps[id]
}

// sendWithRetry delivers payload in MaxMessageBytes chunks, waiting a tick whenever the
// destination queue is full. Other send failures drop the rest of the payload.
func sendWithRetry(ctx *kernel.Context, toCap kernel.Capability, kind proto.Kind, payload []byte, xfer kernel.Capability) kernel.SendResult {
	if !toCap.Valid() {
		return kernel.SendErrInvalidToCap
	}
	for {
		chunk := payload
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := ctx.SendToCapResult(toCap, uint16(kind), chunk, xfer)
		for res == kernel.SendErrQueueFull {
			ctx.BlockOnTick()
			res = ctx.SendToCapResult(toCap, uint16(kind), chunk, xfer)
		}
		if res != kernel.SendOK {
			return res
		}
		payload = payload[len(chunk):]
		if len(payload) == 0 {
			return kernel.SendOK
		}
	}
}
