// Package display derives the UI scale factor from the screen height.
package display

import (
	"math"
	"os"
	"strconv"

	"github.com/rpgshelf/shelf/internal/config"
)

// BaseHeight is the screen height that renders at scale 1.0.
const BaseHeight = 1080

// Scale limits.
const (
	MinScale = 1.0
	MaxScale = 2.5
)

// FyneScaleEnv is read by the Fyne driver at startup.
const FyneScaleEnv = "FYNE_SCALE"

// ScaleFactor returns height/BaseHeight clamped to [MinScale, MaxScale]
// and rounded to one decimal. A non-positive height counts as BaseHeight.
func ScaleFactor(height int) float64 {
	if height <= 0 {
		height = BaseHeight
	}
	f := float64(height) / BaseHeight
	f = math.Max(MinScale, math.Min(f, MaxScale))
	return math.Round(f*10) / 10
}

// Detect returns the scale factor for the configured screen height,
// falling back to BaseHeight when none is set.
func Detect(s *config.Settings) float64 {
	if s == nil {
		return ScaleFactor(BaseHeight)
	}
	return ScaleFactor(s.ScreenHeight)
}

// ExportFyneScale sets FYNE_SCALE for the desktop driver unless the user
// already set it.
func ExportFyneScale(factor float64) error {
	if _, set := os.LookupEnv(FyneScaleEnv); set {
		return nil
	}
	return os.Setenv(FyneScaleEnv, strconv.FormatFloat(factor, 'f', 1, 64))
}
