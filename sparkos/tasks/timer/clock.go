package timer

import "fmt"

// TicksPerSecond is the kernel tick rate (1ms ticks).
const TicksPerSecond = 1000

type Mode uint8

const (
	Stopwatch Mode = iota
	Countdown
)

func (m Mode) String() string {
	if m == Countdown {
		return "timer"
	}
	return "stopwatch"
}

// Field is one of the countdown setup fields.
type Field uint8

const (
	Hours Field = iota
	Minutes
	Seconds
)

var fieldMax = [...]int{Hours: 99, Minutes: 59, Seconds: 59}

func (f Field) String() string {
	switch f {
	case Hours:
		return "hours"
	case Minutes:
		return "minutes"
	default:
		return "seconds"
	}
}

// Clock is a stopwatch / countdown timer counting whole seconds.
type Clock struct {
	mode    Mode
	running bool
	secs    int
	sub     uint64 // ticks toward the next whole second

	setup [3]int
	field Field
}

// NewClock returns a stopped stopwatch at zero.
func NewClock() *Clock { return &Clock{} }

func (c *Clock) Mode() Mode      { return c.mode }
func (c *Clock) Running() bool   { return c.running }
func (c *Clock) Seconds() int    { return c.secs }
func (c *Clock) Field() Field    { return c.field }
func (c *Clock) Setup() [3]int   { return c.setup }
func (c *Clock) Text() string    { return FormatHMS(c.secs) }
func (c *Clock) SetupTotal() int { return c.setup[Hours]*3600 + c.setup[Minutes]*60 + c.setup[Seconds] }

// Advance moves the clock forward by ticks. It reports true when a running countdown
// reaches zero; the clock is stopped at that point.
func (c *Clock) Advance(ticks uint64) (finished bool) {
	if !c.running {
		return false
	}
	c.sub += ticks
	for c.sub >= TicksPerSecond {
		c.sub -= TicksPerSecond
		if c.mode == Stopwatch {
			c.secs++
			continue
		}
		if c.secs <= 1 {
			c.secs = 0
			c.running = false
			c.sub = 0
			return true
		}
		c.secs--
	}
	return false
}

// Toggle starts or pauses the clock.
func (c *Clock) Toggle() { c.running = !c.running }

// Reset stops the clock and rewinds it: to the configured time in countdown mode,
// to zero for the stopwatch.
func (c *Clock) Reset() {
	c.running = false
	c.sub = 0
	if c.mode == Countdown {
		c.secs = c.SetupTotal()
		return
	}
	c.secs = 0
}

// SetMode selects a mode, leaving the current time alone.
func (c *Clock) SetMode(m Mode) { c.mode = m }

// SwitchMode flips between stopwatch and countdown and resets.
func (c *Clock) SwitchMode() {
	if c.mode == Stopwatch {
		c.mode = Countdown
	} else {
		c.mode = Stopwatch
	}
	c.Reset()
}

// SelectField moves the setup cursor, clamped to the three fields.
func (c *Clock) SelectField(delta int) {
	f := int(c.field) + delta
	if f < int(Hours) {
		f = int(Hours)
	}
	if f > int(Seconds) {
		f = int(Seconds)
	}
	c.field = Field(f)
}

// Adjust adds delta to the selected field, clamped to its range.
func (c *Clock) Adjust(delta int) {
	c.setup[c.field] = clampField(c.field, c.setup[c.field]+delta)
}

// TypeDigit shifts d into the selected field as its last digit.
func (c *Clock) TypeDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	c.setup[c.field] = clampField(c.field, (c.setup[c.field]%10)*10+d)
}

// SetField stores v, clamped, into f.
func (c *Clock) SetField(f Field, v int) {
	if f > Seconds {
		return
	}
	c.setup[f] = clampField(f, v)
}

// SetTimer loads the configured time and switches to countdown. A zero total is ignored.
func (c *Clock) SetTimer() bool {
	total := c.SetupTotal()
	if total <= 0 {
		return false
	}
	c.secs = total
	c.sub = 0
	c.mode = Countdown
	return true
}

func clampField(f Field, v int) int {
	if v < 0 {
		return 0
	}
	if max := fieldMax[f]; v > max {
		return max
	}
	return v
}

// FormatHMS renders seconds as HH:MM:SS. Hours keep counting past 99.
func FormatHMS(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
