package mandelbrot

import (
	"image/color"
	"sync"
	"time"
)

var black = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// ColorCache hands out one random color per iteration count. The color is a
// function of the seed and the count alone, so renders split across workers
// agree with serial ones whatever order the counts are first seen in.
type ColorCache struct {
	colors map[uint]color.RGBA
	mutex  sync.Mutex
	seed   uint64
}

func NewColorCache(settings Settings) *ColorCache {
	cache := &ColorCache{}
	cache.Reset(settings)
	return cache
}

// Reset empties the cache at the start of a render. The in-set count is
// pinned to black unless the render is gray scale. A zero seed picks a new
// seed from the clock.
func (cc *ColorCache) Reset(settings Settings) {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cc.seed = uint64(seed)
	cc.colors = make(map[uint]color.RGBA)
	if !settings.GrayScale {
		cc.colors[settings.MaxIterations] = black
	}
}

func (cc *ColorCache) Lookup(iterations uint) color.RGBA {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()

	if c, ok := cc.colors[iterations]; ok {
		return c
	}
	if cc.colors == nil {
		cc.colors = make(map[uint]color.RGBA)
		cc.seed = uint64(time.Now().UnixNano())
	}

	h := splitMix64(cc.seed ^ splitMix64(uint64(iterations)))
	c := color.RGBA{
		R: uint8(h),
		G: uint8(h >> 8),
		B: uint8(h >> 16),
		A: 255,
	}
	cc.colors[iterations] = c
	return c
}

func (cc *ColorCache) Len() int {
	cc.mutex.Lock()
	defer cc.mutex.Unlock()
	return len(cc.colors)
}

// splitMix64 is the SplitMix64 finalizer
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
