package dto

import "bloodbank_backend/internal/models"

type BloodTypeCount struct {
	BloodType models.BloodType `json:"blood_type"`
	Count     int64            `json:"count"`
}

type SetInventoryRequest struct {
	BloodType      models.BloodType `json:"blood_type" validate:"required,is-blood-type"`
	Location       string           `json:"location" validate:"required,max=200"`
	UnitsAvailable int              `json:"units_available" validate:"min=0"`
}

type SearchDonorsQuery struct {
	BloodType models.BloodType `form:"blood_type" validate:"omitempty,is-blood-type"`
	City      string           `form:"city" validate:"max=50"`
	State     string           `form:"state" validate:"max=50"`
}

type DonorSearchResult struct {
	ID          string           `json:"id"`
	FullName    string           `json:"full_name"`
	BloodType   models.BloodType `json:"blood_type"`
	City        string           `json:"city"`
	State       string           `json:"state"`
	Phone       string           `json:"phone"`
	IsAvailable bool             `json:"is_available"`
	CanDonate   bool             `json:"can_donate"`
}

type CompatibilityResponse struct {
	BloodType            models.BloodType   `json:"blood_type"`
	CompatibleDonorTypes []models.BloodType `json:"compatible_donor_types"`
	UrgencyScore         int                `json:"urgency_score"`
}
