package video

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// Palette maps a 2-bit shade (as produced by BGP/OBP0/OBP1) to a display
// RGB triple. Owned by the PPU (see New/SetPalette), never a package
// global — DESIGN NOTES §9 calls out the original's process-wide palette
// constant as something to avoid re-architecting as shared mutable state.
type Palette [4][3]byte

// DefaultPalette is the classic DMG green-tinted palette from spec.md §6.
var DefaultPalette = Palette{
	{232, 248, 208},
	{136, 192, 112},
	{52, 104, 86},
	{8, 24, 32},
}

// FrameBuffer is a preallocated 160x144 RGB pixel buffer.
type FrameBuffer struct {
	pixels [FramebufferWidth * FramebufferHeight * 3]byte
}

// NewFrameBuffer returns a zeroed (black) framebuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// SetPixel writes one RGB pixel at (x, y).
func (fb *FrameBuffer) SetPixel(x, y int, rgb [3]byte) {
	i := (y*FramebufferWidth + x) * 3
	fb.pixels[i] = rgb[0]
	fb.pixels[i+1] = rgb[1]
	fb.pixels[i+2] = rgb[2]
}

// Pixels returns the raw 160*144*3 RGB byte slice, per spec.md §6's
// shell-facing framebuffer contract. The caller must treat it as
// read-only; the core reuses the same backing array every frame.
func (fb *FrameBuffer) Pixels() []byte {
	return fb.pixels[:]
}

// Clear blanks the framebuffer to black, used when the LCD is disabled.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = 0
	}
}
