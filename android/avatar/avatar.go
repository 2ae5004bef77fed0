// Package avatar turns stored contact photos into the PNG bytes returned to
// callers: full size for high-resolution requests, a square thumbnail
// otherwise.
package avatar

import (
	"bytes"
	"context"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ThumbnailSize is the edge length of thumbnails in pixels.
const ThumbnailSize = 96

// ErrNoPhoto is what a PhotoSource wraps when a contact has no photo.
var ErrNoPhoto = errors.New("avatar: no photo")

// PhotoSource reads the raw stored photo of a contact.
type PhotoSource interface {
	Photo(ctx context.Context, identifier string) ([]byte, error)
}

// Encode decodes raw (png, jpeg, gif, bmp, tiff or webp) and re-encodes it as
// PNG. Unless highRes is set the image is center-cropped to a square and
// scaled to ThumbnailSize.
func Encode(raw []byte, highRes bool) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "avatar: decode image")
	}
	if !highRes {
		img = thumbnail(img, ThumbnailSize)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, errors.Wrap(err, "avatar: encode png")
	}
	return out.Bytes(), nil
}

func thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	src := image.Rect(x0, y0, x0+side, y0+side)

	if side < size {
		size = side
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// Loader fetches photos from Source and encodes them.
type Loader struct {
	Source PhotoSource
	// IsNotFound reports whether a Source error means "no photo". When nil,
	// errors wrapping ErrNoPhoto are treated that way.
	IsNotFound func(error) bool
	Log        *zap.SugaredLogger
}

// Load returns the encoded photo of the contact, or nil without error when
// the contact has none.
func (l Loader) Load(ctx context.Context, identifier string, highRes bool) ([]byte, error) {
	raw, err := l.Source.Photo(ctx, identifier)
	if err != nil {
		if l.notFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "avatar: reading photo of contact %s", identifier)
	}

	encoded, err := Encode(raw, highRes)
	if err != nil {
		if l.Log != nil {
			l.Log.Warnw("could not encode contact photo", "identifier", identifier, "error", err)
		}
		return nil, err
	}
	return encoded, nil
}

func (l Loader) notFound(err error) bool {
	if l.IsNotFound != nil {
		return l.IsNotFound(err)
	}
	return errors.Is(err, ErrNoPhoto)
}
