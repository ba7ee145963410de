// Package display shows frames in a desktop window and maps a few keys onto
// the settings: up/down change the iteration cap by 10, left/right change the
// escape radius by 1, G toggles gray scale, C cycles the coloring and Enter
// generates.
package display

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"mandelbrot/controls"
	"mandelbrot/coordinator"
	"mandelbrot/mandelbrot"
)

// Generator is the part of the coordinator the window drives
type Generator interface {
	Current() coordinator.Frame
	Generate(settings mandelbrot.Settings) (coordinator.Frame, error)
	Subscribe() (<-chan coordinator.Frame, func())
}

type Window struct {
	frames      <-chan coordinator.Frame
	generator   Generator
	image       *ebiten.Image
	lastError   error
	logger      bslogger.Logger
	pending     mandelbrot.Settings
	shown       uint
	unsubscribe func()
}

func NewWindow(generator Generator) *Window {
	w := &Window{
		generator: generator,
		logger:    bslogger.NewLogger("Window", bslogger.Normal, nil),
		pending:   generator.Current().Settings,
	}
	w.frames, w.unsubscribe = generator.Subscribe()
	return w
}

// Run blocks until the window is closed
func (w *Window) Run() error {
	defer w.unsubscribe()

	ebiten.SetWindowSize(int(w.pending.Width), int(w.pending.Height))
	ebiten.SetWindowTitle("Mandelbrot")
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	// Pick up frames generated elsewhere, such as from the panel
	select {
	case frame, ok := <-w.frames:
		if ok {
			w.show(frame)
		}
	default:
	}

	w.pending = controls.Apply(w.pending, pressedKeys())

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		frame, err := w.generator.Generate(w.pending)
		w.lastError = err
		if err != nil {
			w.logger.Error(err.Error())
			return nil
		}
		w.show(frame)
	}
	return nil
}

func (w *Window) show(frame coordinator.Frame) {
	if frame.Image == nil || frame.Number == w.shown {
		return
	}
	bounds := frame.Image.Bounds()
	if w.image == nil || w.image.Bounds() != bounds {
		w.image = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}
	w.image.WritePixels(frame.Image.Pix)
	w.shown = frame.Number
	w.pending = frame.Settings
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.image != nil {
		screen.DrawImage(w.image, &ebiten.DrawImageOptions{})
	}

	status := fmt.Sprintf("Frame %d\nNext: %s", w.shown, coordinator.Describe(w.pending))
	if w.lastError != nil {
		status += "\nError: " + w.lastError.Error()
	}
	ebitenutil.DebugPrint(screen, status)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(w.pending.Width), int(w.pending.Height)
}

var bindings = map[ebiten.Key]controls.Key{
	ebiten.KeyArrowUp:    controls.MoreIterations,
	ebiten.KeyArrowDown:  controls.FewerIterations,
	ebiten.KeyArrowRight: controls.WiderRadius,
	ebiten.KeyArrowLeft:  controls.NarrowerRadius,
	ebiten.KeyG:          controls.ToggleGrayScale,
	ebiten.KeyC:          controls.NextColoring,
}

func pressedKeys() []controls.Key {
	var keys []controls.Key
	for k, action := range bindings {
		if inpututil.IsKeyJustPressed(k) {
			keys = append(keys, action)
		}
	}
	return keys
}
