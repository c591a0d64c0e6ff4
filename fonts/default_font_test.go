package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func Test_ShieldFont(t *testing.T) {
	font := ShieldFont()
	require.NotNil(t, font)
	assert.NotZero(t, font.Index('7'))
}

func Test_LoadFont(t *testing.T) {
	font, err := LoadFont(goregular.TTF)
	require.NoError(t, err)
	assert.NotNil(t, font)

	_, err = LoadFont([]byte("not a font"))
	require.Error(t, err)
}
