package docxaur

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngFetcher serves a generated PNG of fixed pixel dimensions.
type pngFetcher struct {
	width, height int
}

func (f *pngFetcher) Fetch(ctx context.Context, locator string) ([]byte, string, error) {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/png", nil
}

func prepareImage(t *testing.T, d *Document, img *Image) *ImageRecord {
	t.Helper()
	if err := img.prepare(context.Background(), d); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	rec, ok := d.Registry().Lookup(img.Locator)
	if !ok {
		t.Fatal("record missing after prepare")
	}
	return rec
}

func TestImageIntrinsicExtent(t *testing.T) {
	d := New(WithFetcher(&pngFetcher{width: 200, height: 100}))
	img := NewImage("https://example.com/wide.png")
	rec := prepareImage(t, d, img)

	cx, cy, err := img.extent(d, rec)
	if err != nil {
		t.Fatalf("extent failed: %v", err)
	}
	// 200x100 px at 9525 EMU per pixel.
	if cx != 200*9525 || cy != 100*9525 {
		t.Errorf("intrinsic extent = %dx%d, want %dx%d", cx, cy, 200*9525, 100*9525)
	}
}

func TestImageSingleDimensionKeepsAspect(t *testing.T) {
	d := New(WithFetcher(&pngFetcher{width: 200, height: 100}))

	img := NewImage("https://example.com/wide.png").Sized("2in", "")
	rec := prepareImage(t, d, img)
	cx, cy, err := img.extent(d, rec)
	if err != nil {
		t.Fatalf("extent failed: %v", err)
	}
	if cx != 2*914400 {
		t.Errorf("cx = %d, want %d", cx, 2*914400)
	}
	if cy != cx/2 {
		t.Errorf("cy = %d, want half of cx (%d)", cy, cx/2)
	}

	tall := NewImage("https://example.com/tall.png").Sized("", "1in")
	rec = prepareImage(t, d, tall)
	cx, cy, err = tall.extent(d, rec)
	if err != nil {
		t.Fatalf("extent failed: %v", err)
	}
	if cy != 914400 || cx != 2*914400 {
		t.Errorf("extent = %dx%d, want %dx%d", cx, cy, 2*914400, 914400)
	}
}

func TestImageExplicitExtent(t *testing.T) {
	d := New(WithFetcher(&pngFetcher{width: 10, height: 10}))
	img := NewImage("https://example.com/sq.png").Sized("1cm", "2cm")
	rec := prepareImage(t, d, img)

	cx, cy, err := img.extent(d, rec)
	if err != nil {
		t.Fatalf("extent failed: %v", err)
	}
	if cx != 360000 || cy != 720000 {
		t.Errorf("extent = %dx%d, want 360000x720000", cx, cy)
	}
}

func TestImageUndecodablePayloadFallsBack(t *testing.T) {
	w, h := intrinsicSize([]byte("not an image"))
	if w != 100 || h != 100 {
		t.Errorf("fallback size = %dx%d, want 100x100", w, h)
	}
}

func TestImageRenderBeforePreparePanics(t *testing.T) {
	d := testDocument()
	img := NewImage("https://example.com/never.png")

	defer func() {
		if recover() == nil {
			t.Error("render before prepare did not panic")
		}
	}()
	img.render(d)
}
