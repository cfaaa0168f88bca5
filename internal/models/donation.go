package models

import "time"

type Donation struct {
	BaseModel
	DonorID      string    `gorm:"type:uuid;not null;index" json:"donor_id"`
	DonationDate time.Time `gorm:"type:date;not null" json:"donation_date"`
	BloodType    BloodType `gorm:"type:varchar(5);not null" json:"blood_type"`
	UnitsDonated int       `gorm:"default:1" json:"units_donated"`
	Location     string    `gorm:"size:200" json:"location,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
}

type DonationEvent struct {
	BaseModel
	OrganizationID  string      `gorm:"type:uuid;not null;index" json:"organization_id"`
	EventName       string      `gorm:"size:200;not null" json:"event_name"`
	Description     string      `gorm:"type:text" json:"description,omitempty"`
	EventDate       time.Time   `gorm:"type:date;not null;index" json:"event_date"`
	StartTime       string      `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	EndTime         string      `gorm:"type:varchar(5);not null" json:"end_time"`
	Location        string      `gorm:"size:200;not null" json:"location"`
	Address         string      `gorm:"type:text;not null" json:"address"`
	City            string      `gorm:"size:50;not null" json:"city"`
	State           string      `gorm:"size:50;not null" json:"state"`
	MaxParticipants *int        `json:"max_participants,omitempty"`
	Status          EventStatus `gorm:"type:varchar(20);default:'upcoming';index" json:"status"`

	Organization *OrganizationProfile `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

type BloodInventory struct {
	BaseModel
	BloodType      BloodType `gorm:"type:varchar(5);not null;uniqueIndex:idx_inventory_type_location" json:"blood_type"`
	UnitsAvailable int       `gorm:"default:0" json:"units_available"`
	Location       string    `gorm:"size:200;not null;uniqueIndex:idx_inventory_type_location" json:"location"`
	LastUpdated    time.Time `gorm:"not null" json:"last_updated"`
}

func (BloodInventory) TableName() string {
	return "blood_inventory"
}
