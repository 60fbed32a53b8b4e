package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"sort"
)

// Atlas is a packed texture image plus the pixel rectangle of every texture.
type Atlas struct {
	Image  *image.RGBA
	Frames map[string]image.Rectangle
}

// Map returns the TextureMap of a packed texture. Unknown names are a content
// error and panic.
func (a *Atlas) Map(name string, rotation, flip uint8) TextureMap {
	frame, ok := a.Frames[name]
	if !ok {
		panic(fmt.Sprintf("texture %q is not in the atlas", name))
	}
	b := a.Image.Bounds()
	return New(b.Dx(), b.Dy(), frame, rotation, flip)
}

// Packer places textures on shelves, tallest first, inside a fixed maximum size.
// No rotation, padding or trimming is applied.
type Packer struct {
	maxW, maxH int
}

// NewPacker creates a packer for an atlas of at most maxW x maxH pixels.
func NewPacker(maxW, maxH int) *Packer {
	return &Packer{maxW: maxW, maxH: maxH}
}

// PackerFor sizes a packer the way the content loader expects: enough columns
// and rows of the largest texture for every image plus slack.
func PackerFor(images map[string]image.Image) *Packer {
	bw, bh := 0, 0
	for _, img := range images {
		b := img.Bounds()
		bw = max(bw, b.Dx())
		bh = max(bh, b.Dy())
	}
	n := len(images)
	cols := (n + 2) / 2
	rows := cols + 1
	return NewPacker(bw*cols, bh*rows)
}

// Pack lays out the images and renders the atlas. The result is trimmed to the
// used area.
func (p *Packer) Pack(images map[string]image.Image) (*Atlas, error) {
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		hi := images[names[i]].Bounds().Dy()
		hj := images[names[j]].Bounds().Dy()
		if hi != hj {
			return hi > hj
		}
		return names[i] < names[j]
	})

	frames := make(map[string]image.Rectangle, len(names))
	x, y, shelfH := 0, 0, 0
	usedW, usedH := 0, 0
	for _, name := range names {
		b := images[name].Bounds()
		w, h := b.Dx(), b.Dy()
		if w > p.maxW || h > p.maxH {
			return nil, fmt.Errorf("pack texture %s: %dx%d exceeds atlas %dx%d", name, w, h, p.maxW, p.maxH)
		}
		if x+w > p.maxW {
			x = 0
			y += shelfH
			shelfH = 0
		}
		if y+h > p.maxH {
			return nil, fmt.Errorf("pack texture %s: atlas %dx%d is full", name, p.maxW, p.maxH)
		}
		frames[name] = image.Rect(x, y, x+w, y+h)
		x += w
		shelfH = max(shelfH, h)
		usedW = max(usedW, x)
		usedH = max(usedH, y+h)
	}

	img := image.NewRGBA(image.Rect(0, 0, max(usedW, 1), max(usedH, 1)))
	for name, frame := range frames {
		src := images[name]
		draw.Draw(img, frame, src, src.Bounds().Min, draw.Src)
	}
	return &Atlas{Image: img, Frames: frames}, nil
}
