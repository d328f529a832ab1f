package preview

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/require"

	"tm-spectators/internal/export"
)

func sampleRows() []export.Row {
	return []export.Row{
		{Quat: [4]float64{1, 0, 0, 0}, Pos: [3]float64{0, 0, 0}},
		{Quat: [4]float64{0.7, 0, 0, 0.7}, Pos: [3]float64{10, 4, 0}},
	}
}

func TestRender_ColoursByHeight(t *testing.T) {
	img := Render(sampleRows(), Options{Size: 64, Supersample: 2})
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	low := img.NRGBAAt(8, 32)
	high := img.NRGBAAt(56, 32)
	require.Greater(t, low.B, low.R, "lowest spectator should be blue, got %v", low)
	require.Greater(t, high.R, high.B, "highest spectator should be red, got %v", high)
}

func TestRender_EmptyAndDefaults(t *testing.T) {
	img := Render(nil, Options{})
	require.Equal(t, DefaultOptions.Size, img.Bounds().Dx())
	require.Equal(t, background, img.NRGBAAt(img.Bounds().Dx()-1, img.Bounds().Dy()-1))
}

func TestRender_SinglePoint(t *testing.T) {
	img := Render(sampleRows()[:1], Options{Size: 32, Supersample: 1})
	c := img.NRGBAAt(16, 16)
	require.NotEqual(t, background, c)
}

func TestDownsample_KeepsSmallImages(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	require.Same(t, src, Downsample(src, 16, 16, background))

	big := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	fill(big, lowColor)
	out := Downsample(big, 16, 16, background)
	require.Equal(t, image.Rect(0, 0, 16, 16), out.Bounds())
	requireNear(t, lowColor, out.NRGBAAt(8, 8))
}

func TestDownsample_TransparentBlendsIntoBackground(t *testing.T) {
	big := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 16; y++ {
			big.SetNRGBA(x, y, highColor)
		}
	}

	out := Downsample(big, 16, 16, background)
	requireNear(t, highColor, out.NRGBAAt(8, 2))
	requireNear(t, background, out.NRGBAAt(8, 13))
	require.Equal(t, uint8(255), out.NRGBAAt(8, 8).A)
}

func requireNear(t *testing.T, want, got color.NRGBA) {
	t.Helper()
	require.InDelta(t, want.R, got.R, 1, "got %v", got)
	require.InDelta(t, want.G, got.G, 1, "got %v", got)
	require.InDelta(t, want.B, got.B, 1, "got %v", got)
	require.InDelta(t, want.A, got.A, 1, "got %v", got)
}

func TestSave_Formats(t *testing.T) {
	dir := t.TempDir()
	img := Render(sampleRows(), Options{Size: 32, Supersample: 2})

	webpPath := filepath.Join(dir, "nested", "preview.webp")
	require.NoError(t, Save(webpPath, img))
	f, err := os.Open(webpPath)
	require.NoError(t, err)
	decoded, err := nativewebp.Decode(f)
	f.Close()
	require.NoError(t, err)
	require.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())

	tgaPath := filepath.Join(dir, "preview.tga")
	require.NoError(t, Save(tgaPath, img))
	f, err = os.Open(tgaPath)
	require.NoError(t, err)
	decoded, err = tga.Decode(f)
	f.Close()
	require.NoError(t, err)
	require.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())

	require.NoError(t, Save(filepath.Join(dir, "preview.png"), img))

	err = Save(filepath.Join(dir, "preview.bmp"), img)
	require.ErrorContains(t, err, "unsupported format")
}
