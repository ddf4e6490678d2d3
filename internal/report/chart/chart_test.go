package chart_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/report/chart"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPie(t *testing.T) {
	png, err := chart.Pie("Distribuição por categoria", []chart.Slice{
		{Value: 300, Legend: "educação: R$ 300,00 (85,7%)"},
		{Value: 50, Legend: "saúde: R$ 50,00 (14,3%)"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, pngMagic, png[:4])
}

// Every chart must come out at the print resolution and match the
// aspect ratio the layout code uses for its bounding boxes.
func TestRenderedDimensions(t *testing.T) {
	pie, err := chart.Pie("Distribuição", []chart.Slice{{Value: 1, Legend: "educação"}})
	require.NoError(t, err)

	line, err := chart.CumulativeLine("Evolução", []string{"jan/2024"}, []float64{100})
	require.NoError(t, err)

	bar, err := chart.MonthlyBar("Totais", []string{"jan/2024"}, []float64{100})
	require.NoError(t, err)

	trend, err := chart.Trend("Tendência", []string{"jan/2024"}, []float64{100}, []float64{100})
	require.NoError(t, err)

	for name, data := range map[string][]byte{
		"pie": pie, "line": line, "bar": bar, "trend": trend,
	} {
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err, name)
		assert.Equal(t, 1200, cfg.Width, name)
		assert.Equal(t, 780, cfg.Height, name)
		assert.InDelta(t, chart.Aspect(), float64(cfg.Height)/float64(cfg.Width), 1e-9, name)
	}
}

func TestPie_Empty(t *testing.T) {
	_, err := chart.Pie("vazio", nil)
	assert.ErrorIs(t, err, chart.ErrEmptySeries)
}

func TestCumulativeLine(t *testing.T) {
	png, err := chart.CumulativeLine("Evolução acumulada",
		[]string{"jan/2024", "fev/2024", "mar/2024"},
		[]float64{100, 250, 400},
	)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestCumulativeLine_Empty(t *testing.T) {
	_, err := chart.CumulativeLine("vazio", nil, nil)
	assert.ErrorIs(t, err, chart.ErrEmptySeries)
}

func TestMonthlyBar(t *testing.T) {
	png, err := chart.MonthlyBar("Totais mensais",
		[]string{"jan/2024", "fev/2024"},
		[]float64{150, 200},
	)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestTrend(t *testing.T) {
	png, err := chart.Trend("Tendência",
		[]string{"jan/2024", "fev/2024", "mar/2024"},
		[]float64{100, 200, 150},
		[]float64{100, 150, 150},
	)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:4])
}

func TestTrend_LengthMismatch(t *testing.T) {
	_, err := chart.Trend("Tendência",
		[]string{"jan/2024"},
		[]float64{100, 200},
		[]float64{100},
	)
	assert.Error(t, err)
}
