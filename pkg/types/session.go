package types

// DateLayout is the format session dates are stored in.
const DateLayout = "2006-01-02"

// Session kind labels used in the kind column and its filter.
const (
	SessionKindCampaign = "Campaign"
	SessionKindOneShot  = "One-shot"
)

// Session is one play session of a system, run by a game master for a set
// of players. The game master is never one of the players.
type Session struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"` // YYYY-MM-DD.
	SystemID       *int64  `json:"system_id,omitempty"`
	PlayerCount    int     `json:"player_count"`
	GMID           *int64  `json:"gm_id,omitempty"`
	Campaign       bool    `json:"campaign"`
	OneShot        bool    `json:"one_shot"`
	CampaignTitle  string  `json:"campaign_title,omitempty"`
	AdventureTitle string  `json:"adventure_title,omitempty"`
	PlayerIDs      []int64 `json:"player_ids"`
}

// KindDisplay describes the session kind with its titles, e.g.
// "Campaign: Curse of Strahd / Death House" or "One-shot: The Lost Mine".
// A blank title leaves the bare kind label.
func (s *Session) KindDisplay() string {
	switch {
	case s.Campaign:
		out := SessionKindCampaign
		if s.CampaignTitle != "" {
			out += ": " + s.CampaignTitle
			if s.AdventureTitle != "" {
				out += " / " + s.AdventureTitle
			}
		}
		return out
	case s.OneShot:
		if s.AdventureTitle == "" {
			return SessionKindOneShot
		}
		return SessionKindOneShot + ": " + s.AdventureTitle
	}
	return ""
}
