//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	picoCalcScreenWidth  = 320
	picoCalcScreenHeight = 320
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     *picoCalcFramebuffer
	kbd    Keyboard
	t      *tinyGoTime
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	fb := &picoCalcFramebuffer{
		w:      picoCalcScreenWidth,
		h:      picoCalcScreenHeight,
		stride: picoCalcScreenWidth * 2,
		buf:    make([]byte, picoCalcScreenWidth*picoCalcScreenHeight*2),
	}
	if lcd, err := initILI9488(); err == nil {
		fb.lcd = lcd
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
	}

	var kbd Keyboard
	if kb, err := newPicoCalcKeyboard(); err == nil {
		kbd = kb
	} else {
		logger.WriteLineString("hal: " + err.Error())
		kbd = stubKeyboard{}
	}

	return &picoCalcHAL{
		logger: logger,
		fb:     fb,
		kbd:    kbd,
		t:      newTinyGoTime(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Time() Time       { return h.t }

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd *ili9488
	sum uint64
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// Present pushes the frame over SPI. An unchanged frame is not re-sent.
func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	sum := xxhash.Sum64(f.buf)
	if sum == f.sum {
		return nil
	}
	if err := f.lcd.blitRGB565LittleEndian(f.buf, f.w, f.h); err != nil {
		return err
	}
	f.sum = sum
	return nil
}

type picoCalcKeyboard struct {
	ch chan KeyEvent
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

func newPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	dev := &picoCalcKeyboard{ch: make(chan KeyEvent, 64)}
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			if ev, ok := kbd.readEvent(); ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	return dev, nil
}

type stubKeyboard struct{}

func (stubKeyboard) Events() <-chan KeyEvent { return nil }
