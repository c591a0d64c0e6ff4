package shielddef

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FetchSpriteSheet(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, image.NewNRGBA(image.Rect(0, 0, 20, 20))))
	pngBytes := buf.Bytes()

	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		switch r.URL.Path {
		case "/sprite.json":
			w.Write([]byte(`{"a": {"x": 0, "y": 0, "width": 20, "height": 20, "pixelRatio": 1}}`))
		case "/sprite.png":
			w.Write(pngBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	sheet, err := FetchSpriteSheet(context.Background(), NewSpriteClient(), server.URL+"/sprite")
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.Len())
	assert.Equal(t, []string{"/sprite@2x.json", "/sprite.json", "/sprite.png"}, requested)

	_, err = FetchSpriteSheet(context.Background(), NewSpriteClient(), server.URL+"/other")
	require.Error(t, err)
}

func Test_ParseSpriteSheet_notPNG(t *testing.T) {
	_, err := ParseSpriteSheet([]byte(`{}`), []byte("GIF89a this is not a png"))
	require.Error(t, err)
}
