package types

// Publisher is a company or person that publishes game systems.
type Publisher struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`              // Required, non-empty.
	Website string `json:"website,omitempty"` // Optional URL.
	Country string `json:"country,omitempty"`
}
