package models

type UserRole string
type BloodType string
type UrgencyLevel string
type RequestStatus string
type ResponseStatus string
type EventStatus string
type NotificationType string

const (
	UserRoleDonor        UserRole = "donor"
	UserRoleHospital     UserRole = "hospital"
	UserRoleOrganization UserRole = "organization"
	UserRoleAdmin        UserRole = "admin"

	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"

	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"

	RequestStatusActive    RequestStatus = "active"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusCancelled RequestStatus = "cancelled"

	ResponseStatusPending  ResponseStatus = "pending"
	ResponseStatusAccepted ResponseStatus = "accepted"
	ResponseStatusDeclined ResponseStatus = "declined"

	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"

	NotificationTypeBloodRequest NotificationType = "blood_request"
	NotificationTypeEvent        NotificationType = "event"
	NotificationTypeSystem       NotificationType = "system"
)

// AllBloodTypes is the fixed display order used by reports.
var AllBloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

func (b BloodType) IsValid() bool {
	for _, t := range AllBloodTypes {
		if t == b {
			return true
		}
	}
	return false
}

func (u UrgencyLevel) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusFulfilled || s == RequestStatusCancelled
}

// SelfRegistrable roles can be chosen at sign-up. Admins are seeded.
func (r UserRole) SelfRegistrable() bool {
	switch r {
	case UserRoleDonor, UserRoleHospital, UserRoleOrganization:
		return true
	}
	return false
}
