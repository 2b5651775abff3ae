// Package imageproc декодирует изображения и приводит их к квадратному входу модели.
package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/DRSN-tech/visual-search/pkg/e"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultInputSize — сторона входного квадрата модели.
const DefaultInputSize = 224

// SurfaceFunc выделяет поверхность для отрисовки размером w×h.
type SurfaceFunc func(w, h int) (draw.Image, error)

// NewRGBASurface — поверхность по умолчанию в памяти процесса.
func NewRGBASurface(w, h int) (draw.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// Preprocessor вписывает изображение в квадрат size×size с сохранением пропорций,
// центрирует его и заливает поля белым. Состояния между вызовами нет.
type Preprocessor struct {
	size      int
	maxPixels int64
	surface   SurfaceFunc
}

// NewPreprocessor создаёт препроцессор. maxPixels ограничивает площадь исходника (0 — без ограничения).
func NewPreprocessor(size int, maxPixels int64, surface SurfaceFunc) *Preprocessor {
	if size <= 0 {
		size = DefaultInputSize
	}
	if surface == nil {
		surface = NewRGBASurface
	}

	return &Preprocessor{
		size:      size,
		maxPixels: maxPixels,
		surface:   surface,
	}
}

// Prepare декодирует jpeg, png или webp и возвращает холст size×size.
func (p *Preprocessor) Prepare(data []byte) (image.Image, error) {
	const op = "Preprocessor.Prepare"

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrImageDecode, err))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, e.Wrap(op, fmt.Errorf("%w: empty image %dx%d", e.ErrImageDecode, cfg.Width, cfg.Height))
	}
	if p.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > p.maxPixels {
		return nil, e.Wrap(op, fmt.Errorf("%w: %dx%d exceeds pixel limit", e.ErrImageDecode, cfg.Width, cfg.Height))
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %w", e.ErrImageDecode, err))
	}

	canvas, err := p.Letterbox(src)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return canvas, nil
}

// Letterbox рисует уже декодированное изображение на новом белом холсте.
func (p *Preprocessor) Letterbox(src image.Image) (image.Image, error) {
	canvas, err := p.surface(p.size, p.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", e.ErrRenderingUnavailable, err)
	}
	if canvas == nil {
		return nil, e.ErrRenderingUnavailable
	}

	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	target := FitRect(src.Bounds().Dx(), src.Bounds().Dy(), p.size)
	if target.Empty() {
		return canvas, nil
	}

	draw.CatmullRom.Scale(canvas, target, src, src.Bounds(), draw.Over, nil)

	return canvas, nil
}

// FitRect возвращает прямоугольник внутри квадрата size×size, в который вписывается
// изображение w×h: масштаб min(size/w, size/h), отступы поровну с обеих сторон.
func FitRect(w, h, size int) image.Rectangle {
	if w <= 0 || h <= 0 || size <= 0 {
		return image.Rectangle{}
	}

	scale := min(float64(size)/float64(w), float64(size)/float64(h))
	sw := max(1, int(float64(w)*scale+0.5))
	sh := max(1, int(float64(h)*scale+0.5))
	sw, sh = min(sw, size), min(sh, size)

	x := (size - sw) / 2
	y := (size - sh) / 2

	return image.Rect(x, y, x+sw, y+sh)
}
