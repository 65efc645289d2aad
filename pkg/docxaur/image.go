package docxaur

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Image is a body-level image element referenced by locator. Width and
// Height accept any absolute unit plus px; when both are empty the intrinsic
// pixel size of the decoded payload is used at 96 dpi.
type Image struct {
	Locator string
	Width   string
	Height  string
}

// NewImage creates an image element for the given locator.
func NewImage(locator string) *Image {
	return &Image{Locator: locator}
}

// Sized sets an explicit extent.
func (i *Image) Sized(width, height string) *Image {
	i.Width = width
	i.Height = height
	return i
}

// prepare implements Element: registration is the only suspension point.
func (i *Image) prepare(ctx context.Context, d *Document) error {
	_, err := d.registry.Register(ctx, i.Locator)
	return err
}

// render implements Element. The registry record must exist by now; a
// missing record means render ran before prepare, which is a bug in the
// assembly ordering, not a recoverable condition.
func (i *Image) render(d *Document) ([]ooxml.BodyElement, error) {
	run, err := i.composeRun(d)
	if err != nil {
		return nil, err
	}
	return []ooxml.BodyElement{ooxml.Paragraph{Content: []ooxml.ParagraphContent{run}}}, nil
}

// composeRun builds the drawing run for this image. Shared with table cells.
func (i *Image) composeRun(d *Document) (ooxml.Run, error) {
	rec, ok := d.registry.Lookup(i.Locator)
	if !ok {
		panic(fmt.Sprintf("docxaur: image %q rendered before registration", i.Locator))
	}

	cx, cy, err := i.extent(d, rec)
	if err != nil {
		return ooxml.Run{}, err
	}

	id := d.nextDrawingID()
	return ooxml.Run{
		Drawing: &ooxml.Drawing{
			ID:        id,
			Name:      fmt.Sprintf("Picture %d", rec.ID),
			WidthEMU:  cx,
			HeightEMU: cy,
			Picture:   &ooxml.Picture{RelID: rec.RelID},
		},
	}, nil
}

// extent resolves the drawing extent in EMU. A single declared dimension
// scales the other from the intrinsic aspect ratio.
func (i *Image) extent(d *Document, rec *ImageRecord) (int64, int64, error) {
	strict := d.cfg.StrictDimensions

	pxW, pxH := intrinsicSize(rec.Data)
	defW := int64(float64(pxW) * emuPerPx)
	defH := int64(float64(pxH) * emuPerPx)

	var cx, cy int64
	var err error
	switch {
	case i.Width != "" && i.Height != "":
		if cx, err = emu(i.Width, strict, defW); err != nil {
			return 0, 0, err
		}
		if cy, err = emu(i.Height, strict, defH); err != nil {
			return 0, 0, err
		}
	case i.Width != "":
		if cx, err = emu(i.Width, strict, defW); err != nil {
			return 0, 0, err
		}
		cy = scaleExtent(cx, pxH, pxW)
	case i.Height != "":
		if cy, err = emu(i.Height, strict, defH); err != nil {
			return 0, 0, err
		}
		cx = scaleExtent(cy, pxW, pxH)
	default:
		cx, cy = defW, defH
	}
	return cx, cy, nil
}

func scaleExtent(base int64, num, den int) int64 {
	if den == 0 {
		return base
	}
	return base * int64(num) / int64(den)
}

// intrinsicSize decodes the image header for its pixel dimensions. Payloads
// that no registered decoder understands report a nominal 100x100.
func intrinsicSize(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return 100, 100
	}
	return cfg.Width, cfg.Height
}
