package ml_service

import (
	"fmt"
	"image"
	"sync"

	"github.com/DRSN-tech/visual-search/pkg/e"
)

// pixelBuffer — RGB-буфер под одно входное изображение модели.
type pixelBuffer struct {
	data []byte
}

// pixelPool переиспользует буферы между вызовами модели; буфер возвращается сразу после вызова.
type pixelPool struct {
	pool sync.Pool
}

func newPixelPool(inputSize int) *pixelPool {
	size := inputSize * inputSize * 3
	return &pixelPool{
		pool: sync.Pool{
			New: func() any {
				return &pixelBuffer{data: make([]byte, size)}
			},
		},
	}
}

func (p *pixelPool) get() *pixelBuffer {
	return p.pool.Get().(*pixelBuffer)
}

func (p *pixelPool) put(buf *pixelBuffer) {
	clear(buf.data)
	p.pool.Put(buf)
}

// fillRGB раскладывает изображение в buf построчно по 3 байта на пиксель, альфа отбрасывается.
func fillRGB(buf *pixelBuffer, img image.Image) (int, int, error) {
	if img == nil {
		return 0, 0, fmt.Errorf("%w: nil image", e.ErrInferenceFailed)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: empty image %dx%d", e.ErrInferenceFailed, width, height)
	}

	need := width * height * 3
	if cap(buf.data) < need {
		buf.data = make([]byte, need)
	}
	buf.data = buf.data[:need]

	if rgba, ok := img.(*image.RGBA); ok {
		i := 0
		for y := 0; y < height; y++ {
			row := rgba.Pix[(y+bounds.Min.Y-rgba.Rect.Min.Y)*rgba.Stride:]
			for x := 0; x < width; x++ {
				off := (x + bounds.Min.X - rgba.Rect.Min.X) * 4
				buf.data[i] = row[off]
				buf.data[i+1] = row[off+1]
				buf.data[i+2] = row[off+2]
				i += 3
			}
		}
		return width, height, nil
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			buf.data[i] = byte(r >> 8)
			buf.data[i+1] = byte(g >> 8)
			buf.data[i+2] = byte(b >> 8)
			i += 3
		}
	}

	return width, height, nil
}
