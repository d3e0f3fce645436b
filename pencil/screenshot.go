package pencil

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshots queues labeled captures of the rendered frame. Queued labels
// are written as PNG files into Dir at the end of the next Renderer.Draw.
type Screenshots struct {
	Dir    string
	Logger *zap.Logger

	queue []string
	saved []string
}

// Queue asks for the current frame to be saved under label. Safe to call from
// Update or Draw.
func (s *Screenshots) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued captures.
func (s *Screenshots) Pending() int {
	return len(s.queue)
}

// Saved returns the paths written so far.
func (s *Screenshots) Saved() []string {
	return s.saved
}

func (s *Screenshots) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// flush captures screen for every queued label.
func (s *Screenshots) flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.logger().Warn("screenshot: mkdir", zap.String("dir", s.Dir), zap.Error(err))
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	paths, err := s.write(toNRGBA(pixels, w, h), time.Now())
	s.saved = append(s.saved, paths...)
	if err != nil {
		s.logger().Warn("screenshot", zap.Error(err))
		return
	}
	for _, p := range paths {
		s.logger().Info("screenshot saved", zap.String("path", p))
	}
}

// write saves img once per queued label, stamped with at.
func (s *Screenshots) write(img *image.NRGBA, at time.Time) ([]string, error) {
	stamp := at.Format("20060102_150405")
	var paths []string
	for _, label := range s.queue {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// toNRGBA converts premultiplied RGBA pixels to straight-alpha NRGBA.
func toNRGBA(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
