package fynegrid

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestScaleToFit_Letterbox(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	dst := scaleToFit(solid(320, 180, red), 64)
	if dst == nil {
		t.Fatal("expected a scaled image")
	}
	if b := dst.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("expected 64x64, got %v", b)
	}
	if _, _, _, a := dst.At(32, 0).RGBA(); a != 0 {
		t.Fatalf("expected a transparent band above the image, alpha %d", a)
	}
	if r, _, _, a := dst.At(32, 32).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Fatalf("expected an opaque red centre, got r=%d a=%d", r>>8, a>>8)
	}

	if scaleToFit(image.NewRGBA(image.Rect(0, 0, 0, 10)), 64) != nil {
		t.Fatal("expected nil for an empty image")
	}
}

func TestImageCache_RequestLoadsOnce(t *testing.T) {
	loads := 0
	loaded := make(chan struct{}, 1)
	c := newImageCache(func(key string) (image.Image, error) {
		loads++
		loaded <- struct{}{}
		return solid(10, 20, color.White), nil
	}, slog.Default())
	defer c.close()

	done := make(chan image.Image, 1)
	c.request(imageRequest{key: "a.png", size: 32, callback: func(img image.Image) { done <- img }})

	select {
	case img := <-done:
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
			t.Fatalf("expected 32x32, got %v", b)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the image")
	}
	<-loaded

	if c.memoryOnly("a.png", 32) == nil {
		t.Fatal("expected the scaled image to be cached")
	}
	if c.memoryOnly("a.png", 64) != nil {
		t.Fatal("expected sizes to be cached separately")
	}

	// cached requests answer synchronously
	var got image.Image
	c.request(imageRequest{key: "a.png", size: 32, callback: func(img image.Image) { got = img }})
	if got == nil || loads != 1 {
		t.Fatalf("expected a cached answer without loading again, loads=%d", loads)
	}
}

func TestImageCache_LoadFailure(t *testing.T) {
	failed := make(chan struct{})
	c := newImageCache(func(string) (image.Image, error) {
		defer close(failed)
		return nil, errors.New("broken")
	}, slog.Default())
	defer c.close()

	c.request(imageRequest{key: "bad", size: 16, callback: func(image.Image) {
		t.Error("callback must not run for a failed load")
	}})

	select {
	case <-failed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the load")
	}
	if c.memoryOnly("bad", 16) != nil {
		t.Fatal("expected nothing cached for a failed load")
	}
}

func TestImageCache_ClosedDropsRequests(t *testing.T) {
	c := newImageCache(func(string) (image.Image, error) {
		t.Error("load must not run after close")
		return nil, nil
	}, slog.Default())
	c.close()

	c.request(imageRequest{key: "x", size: 16, callback: func(image.Image) {}})
	c.reqLock.Lock()
	defer c.reqLock.Unlock()
	if c.started || len(c.requests) != 0 {
		t.Fatal("expected no workers and no queue after close")
	}
}

func TestLoadImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cell.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, solid(4, 2, color.Black)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := loadImageFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("expected 4x2, got %v", b)
	}

	if _, err := loadImageFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
