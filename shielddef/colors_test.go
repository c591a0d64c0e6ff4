package shielddef

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseColor(t *testing.T) {
	tests := []struct {
		Name          string
		Value         string
		Expected      color.NRGBA
		ExpectedError bool
	}{
		{"palette name", "yellow", Yellow, false},
		{"long hex", "#003f87", Blue, false},
		{"short hex", "#fff", White, false},
		{"hsl", "hsl(0, 0%, 0%)", Black, false},
		{"hsl white", "hsl(120, 100%, 100%)", White, false},
		{"hsl red", "hsl(0, 100%, 50%)", color.NRGBA{0xff, 0, 0, 0xff}, false},
		{"whitespace", "  black ", Black, false},
		{"unknown name", "chartreuse", color.NRGBA{}, true},
		{"bad hex", "#ggg", color.NRGBA{}, true},
		{"hsl out of range", "hsl(0, 120%, 50%)", color.NRGBA{}, true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			c, err := ParseColor(test.Value)
			if test.ExpectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.Expected, c)
		})
	}
}

func Test_MustParseColor_panics(t *testing.T) {
	assert.Panics(t, func() {
		MustParseColor("not a color")
	})
}
