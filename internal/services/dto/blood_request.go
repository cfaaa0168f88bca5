package dto

import (
	"bloodbank_backend/internal/models"
)

type CreateBloodRequestRequest struct {
	BloodType    models.BloodType    `json:"blood_type" validate:"required,is-blood-type"`
	UnitsNeeded  int                 `json:"units_needed" validate:"required,min=1,max=20"`
	UrgencyLevel models.UrgencyLevel `json:"urgency_level" validate:"required,is-urgency-level"`
	Description  string              `json:"description" validate:"required"`
	NeededBy     string              `json:"needed_by" validate:"required,datetime=2006-01-02"`
}

type UpdateRequestStatusRequest struct {
	Status models.RequestStatus `json:"status" validate:"required,is-request-status"`
}

type BloodRequestResponse struct {
	*models.BloodRequest
	HospitalName string `json:"hospital_name,omitempty"`
	UrgencyBadge string `json:"urgency_badge"`
	UrgencyScore int    `json:"urgency_score"`
}

type CreateRequestResult struct {
	Request        *BloodRequestResponse `json:"request"`
	NotifiedDonors int                   `json:"notified_donors"`
}

// RespondOutcome is how a donor's response attempt ended. None of them is an error.
type RespondOutcome string

const (
	OutcomeAccepted         RespondOutcome = "accepted"
	OutcomeDeclined         RespondOutcome = "declined"
	OutcomeAlreadyResponded RespondOutcome = "already_responded"
	OutcomeIgnored          RespondOutcome = "ignored"
)

type RespondRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type RespondResult struct {
	Outcome  RespondOutcome               `json:"outcome"`
	Message  string                       `json:"message"`
	Response *models.BloodRequestResponse `json:"response,omitempty"`
}

func NewBloodRequestResponse(r *models.BloodRequest, urgencyBadge string, urgencyScore int) *BloodRequestResponse {
	resp := &BloodRequestResponse{
		BloodRequest: r,
		UrgencyBadge: urgencyBadge,
		UrgencyScore: urgencyScore,
	}
	if r.Hospital != nil {
		resp.HospitalName = r.Hospital.HospitalName
	}
	return resp
}
