package models

type Category struct {
	ID   uint   `json:"id,omitempty"`
	Name string `json:"name" binding:"required"`
}

type Service struct {
	ID          uint    `json:"id,omitempty"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    *uint   `json:"category"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Active      bool    `json:"active"`
}

type ProfessionalServiceAssignment struct {
	ID                  uint `json:"id,omitempty"`
	ProfessionalID      uint `json:"professional_id" binding:"required"`
	ServiceID           uint `json:"service_id" binding:"required"`
	DurationOverrideMin *int `json:"duration_override_min" binding:"omitempty,gt=0"`
}
