package models

import "time"

type BloodRequest struct {
	BaseModel
	HospitalID   string        `gorm:"type:uuid;not null;index" json:"hospital_id"`
	BloodType    BloodType     `gorm:"type:varchar(5);not null;index" json:"blood_type"`
	UnitsNeeded  int           `gorm:"not null" json:"units_needed"`
	UrgencyLevel UrgencyLevel  `gorm:"type:varchar(20);not null" json:"urgency_level"`
	Description  string        `gorm:"type:text" json:"description,omitempty"`
	Status       RequestStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	RequestedAt  time.Time     `gorm:"not null" json:"requested_at"`
	NeededBy     time.Time     `gorm:"not null" json:"needed_by"`

	Hospital  *HospitalProfile       `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Responses []BloodRequestResponse `gorm:"foreignKey:RequestID" json:"responses,omitempty"`
}

// BloodRequestResponse is unique per (request, donor); the index backs the conditional insert.
type BloodRequestResponse struct {
	BaseModel
	RequestID    string         `gorm:"type:uuid;not null;uniqueIndex:idx_response_request_donor" json:"request_id"`
	DonorID      string         `gorm:"type:uuid;not null;uniqueIndex:idx_response_request_donor" json:"donor_id"`
	Status       ResponseStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ResponseDate time.Time      `gorm:"not null" json:"response_date"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`

	Donor *DonorProfile `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
}
