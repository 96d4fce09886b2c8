package theme

// Tone classifies a grid row for coloring.
type Tone int

const (
	ToneNone Tone = iota

	// Systems, in evaluation order.
	ToneForSale
	ToneNotOwned
	ToneWantToBuy
	ToneCoreWithSupplements
	ToneCore
	ToneSupplement
	ToneOrphan

	// Players.
	ToneWoman
	ToneMan
	ToneNonBinary
	ToneOther
	TonePrimary
	ToneNotable

	// Sessions, one per month.
	ToneJanuary
	ToneFebruary
	ToneMarch
	ToneApril
	ToneMay
	ToneJune
	ToneJuly
	ToneAugust
	ToneSeptember
	ToneOctober
	ToneNovember
	ToneDecember
)

// Pair is a row background and text color. An empty FG keeps the
// palette foreground.
type Pair struct {
	BG string
	FG string
}

type tonePairs struct {
	light Pair
	dark  Pair
}

var toneTable = map[Tone]tonePairs{
	ToneForSale:             {Pair{"#ff6666", "#ffffff"}, Pair{"#660000", "#ffcccc"}},
	ToneNotOwned:            {Pair{"#d3d3d3", "#505050"}, Pair{"#3a3a3a", "#b0b0b0"}},
	ToneWantToBuy:           {Pair{"#e6b3ff", "#4a004a"}, Pair{"#4a1a4a", "#e6b3e6"}},
	ToneCoreWithSupplements: {Pair{"#ffa500", "#4d2d00"}, Pair{"#5d4e00", "#ffd700"}},
	ToneCore:                {Pair{"#d4edda", "#155724"}, Pair{"#1a3d1a", "#90ee90"}},
	ToneSupplement:          {Pair{"#f0f8ff", "#2c5282"}, Pair{"#1a2a3d", "#87ceeb"}},
	ToneOrphan:              {Pair{"#ffe6e6", "#8b0000"}, Pair{"#3d1a1a", "#ffb3b3"}},

	ToneWoman:     {Pair{BG: "#ffe6f0"}, Pair{BG: "#4a1a3a"}},
	ToneMan:       {Pair{BG: "#e6f3ff"}, Pair{BG: "#1a3a4a"}},
	ToneNonBinary: {Pair{BG: "#fff2e6"}, Pair{BG: "#4a3a1a"}},
	ToneOther:     {Pair{BG: "#f0e6ff"}, Pair{BG: "#3a1a4a"}},
	TonePrimary:   {Pair{BG: "#fff9e6"}, Pair{BG: "#4a4a1a"}},
	ToneNotable:   {Pair{BG: "#f0e6ff"}, Pair{BG: "#3a1a4a"}},

	ToneJanuary:   {Pair{BG: "#d1e7ff"}, Pair{BG: "#0d4f73"}},
	ToneFebruary:  {Pair{BG: "#e6d1ff"}, Pair{BG: "#4d0d73"}},
	ToneMarch:     {Pair{BG: "#d1ffd1"}, Pair{BG: "#0d730d"}},
	ToneApril:     {Pair{BG: "#fff4c4"}, Pair{BG: "#73730d"}},
	ToneMay:       {Pair{BG: "#ffd1d1"}, Pair{BG: "#730d0d"}},
	ToneJune:      {Pair{BG: "#d1f4ff"}, Pair{BG: "#0d7373"}},
	ToneJuly:      {Pair{BG: "#ffded1"}, Pair{BG: "#73470d"}},
	ToneAugust:    {Pair{BG: "#f0d1ff"}, Pair{BG: "#470d73"}},
	ToneSeptember: {Pair{BG: "#d1ffb8"}, Pair{BG: "#47730d"}},
	ToneOctober:   {Pair{BG: "#ffd8b8"}, Pair{BG: "#73470d"}},
	ToneNovember:  {Pair{BG: "#d1d1ff"}, Pair{BG: "#0d0d73"}},
	ToneDecember:  {Pair{BG: "#ffd1e6"}, Pair{BG: "#730d47"}},
}

// Colors returns the color pair of a tone in light or dark mode. ok is
// false for ToneNone and unknown tones, which keep the default row colors.
func Colors(t Tone, dark bool) (pair Pair, ok bool) {
	pairs, ok := toneTable[t]
	if !ok {
		return Pair{}, false
	}
	if dark {
		return pairs.dark, true
	}
	return pairs.light, true
}

// MonthTone returns the tone for a 1-based month, or ToneNone when month
// is out of range.
func MonthTone(month int) Tone {
	if month < 1 || month > 12 {
		return ToneNone
	}
	return ToneJanuary + Tone(month-1)
}
