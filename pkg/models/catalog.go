package models

// Fleet is a top-level catalog entry. It owns its vessels in catalog order.
type Fleet struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Vessels []*Vessel `json:"vessels"`

	// Presentation state, owned by the catalog tree.
	Open    bool `json:"open"`
	Visible bool `json:"visible"`
}

// Vessel is a leaf catalog entry whose inspection history is fetched lazily.
type Vessel struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	FleetID string            `json:"fleet_id"` // back-reference to the owning fleet
	Meta    map[string]string `json:"meta,omitempty"`

	// Presentation state, owned by the catalog tree.
	Open    bool `json:"open"`
	Visible bool `json:"visible"`
}

// Inspection is one fetched record for a vessel.
type Inspection struct {
	Date  string `json:"date" yaml:"date"`
	Score string `json:"score" yaml:"score"`
}
