package dto

type RecordDonationRequest struct {
	DonationDate string `json:"donation_date" validate:"required,datetime=2006-01-02"`
	UnitsDonated int    `json:"units_donated" validate:"omitempty,min=1,max=5"`
	Location     string `json:"location" validate:"max=200"`
	Notes        string `json:"notes"`
}

type CreateEventRequest struct {
	EventName       string `json:"event_name" validate:"required,max=200"`
	Description     string `json:"description"`
	EventDate       string `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time" validate:"required,datetime=15:04"`
	Location        string `json:"location" validate:"required,max=200"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required,max=50"`
	State           string `json:"state" validate:"required,max=50"`
	MaxParticipants *int   `json:"max_participants" validate:"omitempty,min=1"`
}
