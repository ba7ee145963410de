package worker

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/task"
)

// Pool renders an image with several goroutines, each pulling column tasks
// off a shared channel. Columns never overlap so workers write to the pixel
// buffer without locking; the color cache does its own locking.
type Pool struct {
	logger   bslogger.Logger
	settings Settings
}

func NewPool(settings Settings) Pool {
	pool := Pool{
		logger:   bslogger.NewLogger("WorkerPool", bslogger.Normal, nil),
		settings: settings,
	}
	misc.CheckError(pool.settings.Verify(), pool.logger, misc.Warning)
	return pool
}

func (p *Pool) Settings() Settings {
	return p.settings
}

// Render resets cache and computes the whole image for settings
func (p *Pool) Render(settings mandelbrot.Settings, cache *mandelbrot.ColorCache) *image.RGBA {
	if cache == nil {
		cache = mandelbrot.NewColorCache(settings)
	} else {
		cache.Reset(settings)
	}

	m := mandelbrot.NewMandelbrot(settings)
	mapper := mandelbrot.NewColorMapper(settings, cache)
	img := mandelbrot.NewCanvas(settings)

	tasks := task.Split(settings.Width, p.settings.TaskGeneration, p.settings.ColumnsPerTask)
	tasksTodo := make(chan task.Task, len(tasks))
	for _, t := range tasks {
		tasksTodo <- t
	}
	close(tasksTodo)

	count := p.settings.Count
	if count > len(tasks) {
		count = len(tasks)
	}

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		w := worker{
			id:         i,
			mandelbrot: &m,
			mapper:     mapper,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.processTasks(tasksTodo, img)
			p.logger.Debug(fmt.Sprintf("Worker %d completed %d tasks", w.id, w.tasksCompleted))
		}()
	}
	wg.Wait()

	p.logger.Debug(fmt.Sprintf("Rendered %d tasks with %d workers in %s", len(tasks), count, time.Since(startTime)))
	return img
}

type worker struct {
	id             int
	mandelbrot     *mandelbrot.Mandelbrot
	mapper         mandelbrot.ColorMapper
	tasksCompleted int
}

func (w *worker) processTasks(tasksTodo <-chan task.Task, img *image.RGBA) {
	for t := range tasksTodo {
		w.mandelbrot.RenderColumns(img, w.mapper, t.StartColumn, t.EndColumn)
		w.tasksCompleted++
	}
}
