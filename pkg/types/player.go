package types

// Gender values offered for a player.
type Gender string

const (
	GenderWoman     Gender = "Woman"
	GenderMan       Gender = "Man"
	GenderNonBinary Gender = "Non-binary"
	GenderOther     Gender = "Other"
)

// Genders lists the gender values in picker order. The first is the default.
var Genders = []Gender{GenderWoman, GenderMan, GenderNonBinary, GenderOther}

// Valid reports whether g is one of Genders.
func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// Player status markers shown in the status column.
const (
	PrimaryMarker = "⭐"
	NotableMarker = "👑"
)

// Player status labels used by filters.
const (
	StatusPrimary = "Primary"
	StatusNotable = "Notable"
	StatusRegular = "Regular"
)

// Player is a person who takes part in sessions, either as a participant
// or as the game master. At most one player is the primary user.
type Player struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"` // Required, not enforced unique.
	FullName string `json:"full_name,omitempty"`
	Gender   Gender `json:"gender"`
	Social   string `json:"social,omitempty"` // Social media handle or URL.
	Primary  bool   `json:"primary"`
	Notable  bool   `json:"notable"`
}

// StatusMarker returns the marker for the status column.
func (p *Player) StatusMarker() string {
	switch {
	case p.Primary:
		return PrimaryMarker
	case p.Notable:
		return NotableMarker
	}
	return ""
}

// StatusLabel returns Primary, Notable or Regular.
func (p *Player) StatusLabel() string {
	switch {
	case p.Primary:
		return StatusPrimary
	case p.Notable:
		return StatusNotable
	}
	return StatusRegular
}

// StatusRank orders players by status: primary, notable, then everyone else.
func (p *Player) StatusRank() int {
	switch {
	case p.Primary:
		return 0
	case p.Notable:
		return 1
	}
	return 2
}
