package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifactName(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		ext       string
		commodity string
		market    string
	}{
		{
			name:      "plain pair",
			filename:  "rice_kurnool.onnx",
			ext:       ".onnx",
			commodity: "rice",
			market:    "kurnool",
		},
		{
			name:      "model suffix stripped",
			filename:  "wheat_guntur_model.onnx",
			ext:       ".onnx",
			commodity: "wheat",
			market:    "guntur",
		},
		{
			name:      "multi segment market",
			filename:  "tomato_madanapalle_east.onnx",
			ext:       ".onnx",
			commodity: "tomato",
			market:    "madanapalle_east",
		},
		{
			name:      "alternate extension",
			filename:  "rice_kurnool.model",
			ext:       ".model",
			commodity: "rice",
			market:    "kurnool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArtifactName(tt.filename, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.commodity, got.Commodity)
			assert.Equal(t, tt.market, got.Market)
		})
	}
}

func TestParseArtifactNameKeepsOriginalCase(t *testing.T) {
	got, err := ParseArtifactName("Rice_Kurnool.onnx", ".onnx")
	require.NoError(t, err)

	assert.Equal(t, "rice", got.Commodity)
	assert.Equal(t, "kurnool", got.Market)
	assert.Equal(t, "Rice", got.OriginalCommodity)
	assert.Equal(t, "Kurnool", got.OriginalMarket)
}

func TestParseArtifactNameRejectsSingleSegment(t *testing.T) {
	for _, filename := range []string{"rice.onnx", "rice_model.onnx", "_kurnool.onnx"} {
		t.Run(filename, func(t *testing.T) {
			_, err := ParseArtifactName(filename, ".onnx")
			assert.ErrorIs(t, err, ErrUnparsableName)
		})
	}
}
