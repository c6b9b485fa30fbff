package models

type Region struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Commune struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	RegionID uint   `json:"region_id"`
}

// ClientLookup is the backend answer to a lookup by email or phone.
// Any part may be missing; only present fields are used for prefill.
type ClientLookup struct {
	Found   bool        `json:"found"`
	Client  *ClientInfo `json:"client"`
	Vehicle *Vehicle    `json:"vehicle"`
	Address *Address    `json:"address"`
}
