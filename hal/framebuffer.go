//go:build !tinygo

package hal

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// MemFramebuffer is an RGB565 framebuffer backed by host memory.
//
// It is the display of the desktop and headless runners and the render target of tests.
// Present is a no-op; a runner pulls frames with Snapshot.
type MemFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

// NewMemFramebuffer allocates a zeroed (black) framebuffer.
func NewMemFramebuffer(width, height int) *MemFramebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := width * 2
	return &MemFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }
func (f *MemFramebuffer) Present() error      { return nil }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// PixelRGB returns the color at (x, y) expanded to 8 bits per channel.
func (f *MemFramebuffer) PixelRGB(x, y int) (r, g, b uint8, ok bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, 0, 0, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	r, g, b = rgb888From565(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
	return r, g, b, true
}

// Snapshot copies the current frame into dst and returns its checksum.
//
// dst must hold at least StrideBytes()*Height() bytes; a shorter dst receives a prefix.
func (f *MemFramebuffer) Snapshot(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := copy(dst, f.buf)
	return xxhash.Sum64(dst[:n])
}

// Checksum returns the xxhash64 of the current frame.
func (f *MemFramebuffer) Checksum() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return xxhash.Sum64(f.buf)
}
