package coordinator

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/worker"
)

// Frame is one finished render. Its image is never written to again.
type Frame struct {
	Image    *image.RGBA
	Number   uint
	Settings mandelbrot.Settings
}

// Coordinator owns the current settings and runs one render at a time
// whenever a new set of settings is generated.
type Coordinator struct {
	cache          *mandelbrot.ColorCache
	current        Frame
	logFile        *os.File
	logger         bslogger.Logger
	mutex          sync.Mutex
	nextSubscriber int
	pool           worker.Pool
	runPath        string
	settings       Settings
	subscribers    map[int]chan Frame
}

func NewCoordinator(settings Settings) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	coordinator := &Coordinator{
		cache:       mandelbrot.NewColorCache(settings.Mandelbrot),
		logger:      bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		pool:        worker.NewPool(settings.Workers),
		settings:    settings,
		subscribers: make(map[int]chan Frame),
	}
	coordinator.current.Settings = settings.Mandelbrot

	if settings.SaveImages {
		// Create directory to store files for this run
		coordinator.runPath = filepath.Join(settings.SavePath, settings.RunName)
		if err := os.MkdirAll(coordinator.runPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("unable to create folder %s - %w", coordinator.runPath, err)
		}

		// Copy the settings to the directory so the run can be duplicated in the future
		if err := misc.WriteJSON(filepath.Join(coordinator.runPath, "settings.json"), settings); err != nil {
			return nil, err
		}

		// Create a log file to record the run
		logFile, err := os.Create(filepath.Join(coordinator.runPath, "coordinator.log"))
		if !misc.CheckError(err, coordinator.logger, misc.Warning) {
			coordinator.logFile = logFile
			coordinator.logger = bslogger.NewLogger("Coordinator", bslogger.Normal, logFile)
		}
	}
	coordinator.logger.Debug(settings.String())

	return coordinator, nil
}

func (c *Coordinator) Settings() Settings {
	return c.settings
}

// Current returns the latest frame. Before the first Generate its image is nil.
func (c *Coordinator) Current() Frame {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.current
}

// Generate verifies settings, renders them from scratch and publishes the
// result to every subscriber.
func (c *Coordinator) Generate(settings mandelbrot.Settings) (Frame, error) {
	if err := settings.Verify(); err != nil {
		return Frame{}, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	startTime := time.Now()
	img := c.pool.Render(settings, c.cache)
	c.current = Frame{
		Image:    img,
		Number:   c.current.Number + 1,
		Settings: settings,
	}
	c.logger.Info(fmt.Sprintf("Generated frame %d in %s", c.current.Number, time.Since(startTime)))

	if c.settings.SaveImages {
		if err := c.save(c.current); err != nil {
			c.logger.Error(err.Error())
		}
	}

	for _, ch := range c.subscribers {
		publish(ch, c.current)
	}
	return c.current, nil
}

// Subscribe returns a channel that always holds the newest frame not yet
// received. Slow readers skip frames instead of blocking Generate.
func (c *Coordinator) Subscribe() (<-chan Frame, func()) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	id := c.nextSubscriber
	c.nextSubscriber++
	ch := make(chan Frame, 1)
	c.subscribers[id] = ch
	if c.current.Image != nil {
		ch <- c.current
	}

	return ch, func() {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		if _, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(ch)
		}
	}
}

func (c *Coordinator) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
	if c.logFile != nil {
		err := c.logFile.Close()
		c.logFile = nil
		return err
	}
	return nil
}

func publish(ch chan Frame, frame Frame) {
	select {
	case <-ch:
	default:
	}
	ch <- frame
}

// Output is the image to write out for frame: a captioned copy when captions
// are on, the frame's own image otherwise.
func (c *Coordinator) Output(frame Frame) *image.RGBA {
	if !c.settings.Caption || frame.Image == nil {
		return frame.Image
	}
	img := image.NewRGBA(frame.Image.Bounds())
	draw.Draw(img, img.Bounds(), frame.Image, frame.Image.Bounds().Min, draw.Src)
	misc.Caption(img, Describe(frame.Settings))
	return img
}

func (c *Coordinator) save(frame Frame) error {
	img := c.Output(frame)

	path := filepath.Join(c.runPath, fmt.Sprintf("%d.png", frame.Number))
	if err := misc.SavePNG(path, img); err != nil {
		return fmt.Errorf("unable to save frame %d - %w", frame.Number, err)
	}
	c.logger.Info(fmt.Sprintf("Saved image to %s", path))
	return nil
}

// Describe is a one line summary of settings for captions and status lines
func Describe(s mandelbrot.Settings) string {
	coloring := s.Coloring.String()
	if s.GrayScale {
		coloring = "GrayScale"
	}
	return fmt.Sprintf("%s | iterations %d | %s > %g", coloring, s.MaxIterations, s.Divergence, s.EscapeRadius)
}

// RenderImage renders request and replies with the PNG encoding of the frame
func (c *Coordinator) RenderImage(request mandelbrot.Settings, reply *[]byte) error {
	frame, err := c.Generate(request)
	if err != nil {
		return err
	}
	data, err := misc.EncodePNG(frame.Image)
	if err != nil {
		return err
	}
	*reply = data
	return nil
}

func (c *Coordinator) GetSettings(nothing misc.Nothing, reply *mandelbrot.Settings) error {
	*reply = c.Current().Settings
	return nil
}

// GetImage replies with the PNG encoding of the latest frame
func (c *Coordinator) GetImage(nothing misc.Nothing, reply *[]byte) error {
	frame := c.Current()
	if frame.Image == nil {
		return errors.New("nothing generated yet")
	}
	data, err := misc.EncodePNG(frame.Image)
	if err != nil {
		return err
	}
	*reply = data
	return nil
}

func (c *Coordinator) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}
