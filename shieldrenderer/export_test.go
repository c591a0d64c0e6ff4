package shieldrenderer

import (
	"bytes"
	"context"
	"image/png"
	"io/ioutil"
	"testing"

	"github.com/jamesrr39/goutil/gofs/mockfs"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-shields/shield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ExportFileName(t *testing.T) {
	tests := []struct {
		RouteRef shield.RouteRef
		Expected string
	}{
		{shield.RouteRef{Network: "FSA:TM", Ref: "5A"}, "FSA-TM_5A.png"},
		{shield.RouteRef{Network: "Lutang Trunks", Ref: "A26/A7"}, "Lutang-Trunks_A26-A7.png"},
		{shield.RouteRef{Network: "X:NAMED", WayName: "Ring Road"}, "X-NAMED__Ring-Road.png"},
	}

	for _, test := range tests {
		t.Run(test.Expected, func(t *testing.T) {
			assert.Equal(t, test.Expected, ExportFileName(test.RouteRef))
		})
	}
}

func Test_Export(t *testing.T) {
	sr := newTestRenderer(t, nil)
	fs := mockfs.NewMockFs()
	logger := logpkg.NewLogger(ioutil.Discard, logpkg.LogLevelInfo)

	routeRefs := []shield.RouteRef{
		{Network: "Nowhere", Ref: "1"},
		{Network: "Nowhere", Ref: "H201"},
		{Network: "Nowhere"},
	}

	result, err := sr.Export(context.Background(), fs, logger, routeRefs, "/out", 2)
	require.NoError(t, err)
	assert.Equal(t, ExportResult{Written: 2, NoShield: 1}, result)

	data, readErr := fs.ReadFile("/out/Nowhere_H201.png")
	require.NoError(t, readErr)

	img, decodeErr := png.Decode(bytes.NewReader(data))
	require.NoError(t, decodeErr)
	assert.Equal(t, 40, img.Bounds().Dy())
}
