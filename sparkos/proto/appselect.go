package proto

// AppID identifies a foreground widget in the console multiplexer.
type AppID uint8

const (
	AppNone    AppID = 0
	AppCalc    AppID = 1
	AppConvert AppID = 2
	AppTimer   AppID = 3
)

// Apps lists the selectable widgets in launcher order.
var Apps = []AppID{AppCalc, AppConvert, AppTimer}

func (id AppID) String() string {
	switch id {
	case AppNone:
		return "none"
	case AppCalc:
		return "calc"
	case AppConvert:
		return "convert"
	case AppTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// Title is the human-readable widget name shown by the launcher.
func (id AppID) Title() string {
	switch id {
	case AppCalc:
		return "Calculator"
	case AppConvert:
		return "Currency Converter"
	case AppTimer:
		return "Timer"
	default:
		return ""
	}
}

// ParseAppID maps a short name ("calc", "convert", "timer") to its AppID.
// The empty string and "home" select no widget.
func ParseAppID(name string) (AppID, bool) {
	switch name {
	case "", "home", "none":
		return AppNone, true
	}
	for _, id := range Apps {
		if id.String() == name {
			return id, true
		}
	}
	return AppNone, false
}

// AppSelectPayload encodes an app selection request.
//
// Payload format:
//
//	b[0]   : AppID
//	b[1:]  : optional UTF-8 argument (app-defined)
func AppSelectPayload(id AppID, arg string) []byte {
	b := make([]byte, 1, 1+len(arg))
	b[0] = byte(id)
	b = append(b, arg...)
	return b
}

func DecodeAppSelectPayload(b []byte) (id AppID, arg string, ok bool) {
	if len(b) < 1 {
		return 0, "", false
	}
	return AppID(b[0]), string(b[1:]), true
}
