package dto

import (
	"time"

	"bloodbank_backend/internal/models"
)

const DateLayout = "2006-01-02"

type DonorProfileRequest struct {
	FullName          string           `json:"full_name" validate:"required,max=100"`
	BloodType         models.BloodType `json:"blood_type" validate:"required,is-blood-type"`
	Phone             string           `json:"phone" validate:"required,max=20"`
	Address           string           `json:"address" validate:"required"`
	City              string           `json:"city" validate:"required,max=50"`
	State             string           `json:"state" validate:"required,max=50"`
	ZipCode           string           `json:"zip_code" validate:"required,max=10"`
	DateOfBirth       string           `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	MedicalConditions string           `json:"medical_conditions"`
	IsAvailable       *bool            `json:"is_available"`
}

type HospitalProfileRequest struct {
	HospitalName  string `json:"hospital_name" validate:"required,max=200"`
	LicenseNumber string `json:"license_number" validate:"required,max=50"`
	ContactPerson string `json:"contact_person" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=20"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required,max=50"`
	State         string `json:"state" validate:"required,max=50"`
	ZipCode       string `json:"zip_code" validate:"required,max=10"`
}

type OrganizationProfileRequest struct {
	OrganizationName   string `json:"organization_name" validate:"required,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=50"`
	ContactPerson      string `json:"contact_person" validate:"required,max=100"`
	Phone              string `json:"phone" validate:"required,max=20"`
	Address            string `json:"address" validate:"required"`
	City               string `json:"city" validate:"required,max=50"`
	State              string `json:"state" validate:"required,max=50"`
	ZipCode            string `json:"zip_code" validate:"required,max=10"`
}

// DonorProfileResponse adds the derived eligibility fields to the stored profile.
type DonorProfileResponse struct {
	*models.DonorProfile
	Age              int        `json:"age"`
	CanDonate        bool       `json:"can_donate"`
	NextEligibleDate *time.Time `json:"next_eligible_date,omitempty"`
	UrgencyScore     int        `json:"urgency_score"`
}

// ParseDate parses a YYYY-MM-DD value into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
