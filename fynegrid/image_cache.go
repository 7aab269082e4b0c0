package fynegrid

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type imageRequest struct {
	key      string
	src      image.Image // decoded already, or nil to load key
	size     int
	callback func(image.Image)
}

// imageCache scales cell images to the row height in background workers and
// keeps the results in memory. Requests are served newest first so rows
// scrolled into view win over rows already scrolled past.
type imageCache struct {
	cache sync.Map // map[string]image.Image
	load  func(key string) (image.Image, error)
	log   *slog.Logger

	reqLock  sync.Mutex
	reqCond  *sync.Cond
	requests []imageRequest
	started  bool
	closed   bool
}

func newImageCache(load func(string) (image.Image, error), log *slog.Logger) *imageCache {
	c := &imageCache{
		load:     load,
		log:      log,
		requests: make([]imageRequest, 0, maxPendingImages),
	}
	c.reqCond = sync.NewCond(&c.reqLock)
	return c
}

func cacheKey(key string, size int) string {
	return key + "@" + strconv.Itoa(size)
}

// memoryOnly returns a cached image or nil.
func (c *imageCache) memoryOnly(key string, size int) image.Image {
	if cached, ok := c.cache.Load(cacheKey(key, size)); ok {
		return cached.(image.Image)
	}
	return nil
}

// request queues a scale job. The callback runs on a worker goroutine.
func (c *imageCache) request(req imageRequest) {
	if img := c.memoryOnly(req.key, req.size); img != nil {
		req.callback(img)
		return
	}

	c.reqLock.Lock()
	defer c.reqLock.Unlock()
	if c.closed {
		return
	}
	if !c.started {
		c.started = true
		for range imageWorkers {
			go c.worker()
		}
	}
	if len(c.requests) >= maxPendingImages {
		c.requests = c.requests[1:]
	}
	c.requests = append(c.requests, req)
	c.reqCond.Signal()
}

// close stops the workers. Pending requests are dropped.
func (c *imageCache) close() {
	c.reqLock.Lock()
	c.closed = true
	c.requests = nil
	c.reqLock.Unlock()
	c.reqCond.Broadcast()
}

func (c *imageCache) worker() {
	for {
		c.reqLock.Lock()
		for len(c.requests) == 0 && !c.closed {
			c.reqCond.Wait()
		}
		if c.closed {
			c.reqLock.Unlock()
			return
		}
		last := len(c.requests) - 1
		req := c.requests[last]
		c.requests = c.requests[:last]
		c.reqLock.Unlock()

		if img := c.memoryOnly(req.key, req.size); img != nil {
			req.callback(img)
			continue
		}

		src := req.src
		if src == nil {
			var err error
			if src, err = c.load(req.key); err != nil {
				c.log.Debug("cell image not loaded", "key", req.key, "err", err)
				continue
			}
		}
		dst := scaleToFit(src, req.size)
		if dst == nil {
			continue
		}
		c.cache.Store(cacheKey(req.key, req.size), image.Image(dst))
		req.callback(dst)
	}
}

// scaleToFit letterboxes src into a transparent size×size square.
func scaleToFit(src image.Image, size int) *image.RGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 || size <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	ratio := float64(sw) / float64(sh)
	w, h := size, size
	if ratio > 1 {
		h = max(int(float64(size)/ratio), 1)
	} else {
		w = max(int(float64(size)*ratio), 1)
	}

	x := (size - w) / 2
	y := (size - h) / 2
	draw.ApproxBiLinear.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, draw.Over, nil)
	return dst
}

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
