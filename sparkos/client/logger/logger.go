package logger

import (
	"fmt"

	"sparkwidgets/sparkos/kernel"
	"sparkwidgets/sparkos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	payload := proto.LogLinePayload(line, kernel.MaxMessageBytes)
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), payload, kernel.Capability{})
}

// Logf formats according to a format specifier and sends the line via Log.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}
