// Package consolemux is the client side of the console multiplexer's control capability.
package consolemux

import (
	"fmt"

	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

// retryLimit bounds how many ticks a request waits for room in the mux queue.
const retryLimit = 500

// Open selects id, passing arg, and gives it focus.
func Open(ctx *kernel.Context, muxCap kernel.Capability, id proto.AppID, arg string) error {
	if err := send(ctx, muxCap, proto.MsgAppSelect, proto.AppSelectPayload(id, arg)); err != nil {
		return fmt.Errorf("consolemux open %s: %w", id, err)
	}
	if err := send(ctx, muxCap, proto.MsgAppControl, proto.AppControlPayload(true)); err != nil {
		return fmt.Errorf("consolemux open %s: %w", id, err)
	}
	return nil
}

// Exit hands focus from the calling widget back to the home page.
func Exit(ctx *kernel.Context, muxCap kernel.Capability) error {
	if err := send(ctx, muxCap, proto.MsgAppControl, proto.AppControlPayload(false)); err != nil {
		return fmt.Errorf("consolemux exit: %w", err)
	}
	return nil
}

// SendError is a failed delivery to the mux.
type SendError struct {
	Kind   proto.Kind
	Result kernel.SendResult
}

func (e *SendError) Error() string { return fmt.Sprintf("send %s: %s", e.Kind, e.Result) }

func send(ctx *kernel.Context, muxCap kernel.Capability, kind proto.Kind, payload []byte) error {
	if ctx == nil {
		return fmt.Errorf("nil context")
	}
	if !muxCap.Valid() {
		return &SendError{Kind: kind, Result: kernel.SendErrInvalidToCap}
	}
	if res := ctx.SendToCapRetry(muxCap, uint16(kind), payload, kernel.Capability{}, retryLimit); res != kernel.SendOK {
		return &SendError{Kind: kind, Result: res}
	}
	return nil
}
