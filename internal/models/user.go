package models

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string   `gorm:"size:256;not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive     bool     `gorm:"not null" json:"is_active"`

	// Relations
	DonorProfile        *DonorProfile        `gorm:"foreignKey:UserID" json:"donor_profile,omitempty"`
	HospitalProfile     *HospitalProfile     `gorm:"foreignKey:UserID" json:"hospital_profile,omitempty"`
	OrganizationProfile *OrganizationProfile `gorm:"foreignKey:UserID" json:"organization_profile,omitempty"`
}
