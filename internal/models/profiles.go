package models

import "time"

type DonorProfile struct {
	BaseModel
	UserID            string     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName          string     `gorm:"size:100;not null" json:"full_name"`
	BloodType         BloodType  `gorm:"type:varchar(5);not null;index:idx_donor_type_available" json:"blood_type"`
	Phone             string     `gorm:"size:20;not null" json:"phone"`
	Address           string     `gorm:"type:text;not null" json:"address"`
	City              string     `gorm:"size:50;not null" json:"city"`
	State             string     `gorm:"size:50;not null" json:"state"`
	ZipCode           string     `gorm:"size:10;not null" json:"zip_code"`
	DateOfBirth       time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	LastDonationDate  *time.Time `gorm:"type:date" json:"last_donation_date,omitempty"`
	MedicalConditions string     `gorm:"type:text" json:"medical_conditions,omitempty"`
	IsAvailable       bool       `gorm:"not null;index:idx_donor_type_available" json:"is_available"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

type HospitalProfile struct {
	BaseModel
	UserID        string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	HospitalName  string `gorm:"size:200;not null" json:"hospital_name"`
	LicenseNumber string `gorm:"size:50;not null" json:"license_number"`
	ContactPerson string `gorm:"size:100;not null" json:"contact_person"`
	Phone         string `gorm:"size:20;not null" json:"phone"`
	Address       string `gorm:"type:text;not null" json:"address"`
	City          string `gorm:"size:50;not null" json:"city"`
	State         string `gorm:"size:50;not null" json:"state"`
	ZipCode       string `gorm:"size:10;not null" json:"zip_code"`
}

type OrganizationProfile struct {
	BaseModel
	UserID             string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	OrganizationName   string `gorm:"size:200;not null" json:"organization_name"`
	RegistrationNumber string `gorm:"size:50;not null" json:"registration_number"`
	ContactPerson      string `gorm:"size:100;not null" json:"contact_person"`
	Phone              string `gorm:"size:20;not null" json:"phone"`
	Address            string `gorm:"type:text;not null" json:"address"`
	City               string `gorm:"size:50;not null" json:"city"`
	State              string `gorm:"size:50;not null" json:"state"`
	ZipCode            string `gorm:"size:10;not null" json:"zip_code"`
}
