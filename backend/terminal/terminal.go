// Package terminal renders a System's framebuffer to a tcell screen and
// feeds keyboard state back into its Joypad, the way the reference shell
// drives its emulator core — just swapped to the gbcore API.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mbuck85/gbcore"
	"github.com/mbuck85/gbcore/joypad"
	"github.com/mbuck85/gbcore/video"
)

const (
	frameTime     = time.Second / 60
	keyHoldWindow = 100 * time.Millisecond
	minTermWidth  = video.FramebufferWidth + 2
	minTermHeight = video.FramebufferHeight/2 + 2
)

// Backend drives a gbcore.System and renders it to the terminal using
// tcell, reading joypad input from the keyboard. Terminals have no
// reliable key-up event, so held state is inferred from a rolling
// timeout on the last keypress, the same approach the reference shell
// uses for its own keyState map.
type Backend struct {
	screen  tcell.Screen
	system  *gbcore.System
	running bool

	lastPressed map[joypad.Button]time.Time
}

// New returns a Backend that will drive sys once Run is called.
func New(sys *gbcore.System) *Backend {
	return &Backend{
		system:      sys,
		lastPressed: make(map[joypad.Button]time.Time),
	}
}

var keyMapping = map[tcell.Key]joypad.Button{
	tcell.KeyUp:    joypad.Up,
	tcell.KeyDown:  joypad.Down,
	tcell.KeyLeft:  joypad.Left,
	tcell.KeyRight: joypad.Right,
	tcell.KeyEnter: joypad.Start,
	tcell.KeyTab:   joypad.Select,
}

var runeMapping = map[rune]joypad.Button{
	'z': joypad.A,
	'x': joypad.B,
}

// Run initializes the terminal, then renders at 60Hz until the user
// quits or the process receives a termination signal.
func (b *Backend) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: failed to initialize screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	b.screen = screen
	b.running = true
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	go b.handleSignals()

	slog.Info("terminal backend started")

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for b.running {
		b.pollInput()
		b.applyHeldButtons()

		b.system.RunFrame()
		b.draw()
		screen.Show()

		<-ticker.C
	}

	slog.Info("terminal backend stopped")
	return nil
}

func (b *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	b.running = false
}

func (b *Backend) pollInput() {
	now := time.Now()
	for b.screen.HasPendingEvent() {
		ev := b.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			b.handleKey(ev, now)
		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
}

func (b *Backend) handleKey(ev *tcell.EventKey, now time.Time) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		b.running = false
		return
	}
	if btn, ok := keyMapping[ev.Key()]; ok {
		b.lastPressed[btn] = now
		return
	}
	if ev.Key() == tcell.KeyRune {
		if btn, ok := runeMapping[ev.Rune()]; ok {
			b.lastPressed[btn] = now
		}
	}
}

func (b *Backend) applyHeldButtons() {
	now := time.Now()
	allButtons := []joypad.Button{joypad.Right, joypad.Left, joypad.Up, joypad.Down, joypad.A, joypad.B, joypad.Select, joypad.Start}
	for _, btn := range allButtons {
		held := now.Sub(b.lastPressed[btn]) < keyHoldWindow
		b.system.SetButton(btn, held)
	}
}

// draw packs two Game Boy scanlines into one terminal row with the lower
// half-block glyph, using the framebuffer's RGB bytes directly as true
// terminal color rather than mapping back through a shade table.
func (b *Backend) draw() {
	termWidth, termHeight := b.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		b.drawTooSmall(termWidth, termHeight)
		return
	}

	fb := b.system.Framebuffer()
	pixels := fb.Pixels()

	for y := 0; y < video.FramebufferHeight; y += 2 {
		for x := 0; x < video.FramebufferWidth; x++ {
			top := pixelAt(pixels, x, y)
			bottom := top
			if y+1 < video.FramebufferHeight {
				bottom = pixelAt(pixels, x, y+1)
			}

			style := tcell.StyleDefault.
				Background(rgbColor(top)).
				Foreground(rgbColor(bottom))
			b.screen.SetContent(1+x, 1+y/2, '▄', nil, style)
		}
	}
}

func pixelAt(pixels []byte, x, y int) [3]byte {
	i := (y*video.FramebufferWidth + x) * 3
	return [3]byte{pixels[i], pixels[i+1], pixels[i+2]}
}

func rgbColor(rgb [3]byte) tcell.Color {
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}

func (b *Backend) drawTooSmall(termWidth, termHeight int) {
	b.screen.Clear()
	msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
	style := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for i, ch := range msg {
		if i < termWidth {
			b.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
	}
}
