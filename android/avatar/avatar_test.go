package avatar

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/nalgeon/be"
	"github.com/pkg/errors"
)

func solid(w, h int, format string) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if format == "jpeg" {
		jpeg.Encode(&buf, img, nil)
	} else {
		png.Encode(&buf, img)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	be.Err(t, err, nil)
	return cfg.Width, cfg.Height, format
}

func TestEncodeThumbnail(t *testing.T) {
	out, err := Encode(solid(300, 200, "jpeg"), false)
	be.Err(t, err, nil)

	w, h, format := decodeSize(t, out)
	be.Equal(t, format, "png")
	be.Equal(t, w, ThumbnailSize)
	be.Equal(t, h, ThumbnailSize)
}

func TestEncodeSmallThumbnailNotUpscaled(t *testing.T) {
	out, err := Encode(solid(40, 50, "png"), false)
	be.Err(t, err, nil)

	w, h, _ := decodeSize(t, out)
	be.Equal(t, w, 40)
	be.Equal(t, h, 40)
}

func TestEncodeHighRes(t *testing.T) {
	out, err := Encode(solid(300, 200, "jpeg"), true)
	be.Err(t, err, nil)

	w, h, format := decodeSize(t, out)
	be.Equal(t, format, "png")
	be.Equal(t, w, 300)
	be.Equal(t, h, 200)
}

func TestEncodeGarbage(t *testing.T) {
	_, err := Encode([]byte("not an image"), true)
	be.True(t, err != nil)
}

type mapSource map[string][]byte

func (m mapSource) Photo(_ context.Context, id string) ([]byte, error) {
	raw, ok := m[id]
	if !ok {
		return nil, errors.Wrapf(ErrNoPhoto, "contact %s", id)
	}
	return raw, nil
}

func TestLoader(t *testing.T) {
	ctx := context.Background()
	l := Loader{Source: mapSource{"1": solid(10, 10, "png"), "2": []byte("junk")}}

	out, err := l.Load(ctx, "1", true)
	be.Err(t, err, nil)
	w, _, _ := decodeSize(t, out)
	be.Equal(t, w, 10)

	out, err = l.Load(ctx, "missing", false)
	be.Err(t, err, nil)
	be.True(t, out == nil)

	_, err = l.Load(ctx, "2", false)
	be.True(t, err != nil)
}

func TestLoaderCustomNotFound(t *testing.T) {
	sentinel := errors.New("gone")
	l := Loader{
		Source:     sourceFunc(func(context.Context, string) ([]byte, error) { return nil, sentinel }),
		IsNotFound: func(err error) bool { return errors.Is(err, sentinel) },
	}

	out, err := l.Load(context.Background(), "1", false)
	be.Err(t, err, nil)
	be.True(t, out == nil)
}

type sourceFunc func(context.Context, string) ([]byte, error)

func (f sourceFunc) Photo(ctx context.Context, id string) ([]byte, error) { return f(ctx, id) }
