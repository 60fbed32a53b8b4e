package atlas

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"crafter/internal/logger"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadImages decodes every named texture from dir. Missing names are skipped
// only when they equal placeholder, which is generated instead.
func LoadImages(dir string, names []string, placeholder string) (map[string]image.Image, error) {
	images := make(map[string]image.Image, len(names))
	for _, name := range names {
		if _, ok := images[name]; ok {
			continue
		}
		path := filepath.Join(dir, name)
		img, err := loadImage(path)
		if err != nil {
			if name == placeholder && errors.Is(err, fs.ErrNotExist) {
				images[name] = Checkerboard(16)
				continue
			}
			return nil, err
		}
		images[name] = img
		logger.Log.Debug("texture loaded",
			zap.String("path", path),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
	}
	return images, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return img, nil
}

// Checkerboard is the magenta/black "unknown" texture.
func Checkerboard(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := max(size/2, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			o := img.PixOffset(x, y)
			if (x/half+y/half)%2 == 0 {
				img.Pix[o], img.Pix[o+1], img.Pix[o+2] = 255, 0, 255
			}
			img.Pix[o+3] = 255
		}
	}
	return img
}
