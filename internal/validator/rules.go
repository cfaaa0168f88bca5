package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"bloodbank_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	// a rule that fails to register is a startup bug
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-blood-type", validateBloodType)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-urgency-level", validateUrgencyLevel)
	mustRegister("is-request-status", validateRequestStatus)
	mustRegister("is-response-action", validateResponseAction)
}

// Empty values pass every rule below; 'required' handles them.

func validateBloodType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.BloodType(value).IsValid()
}

// only self-registrable roles; admins are seeded
func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).SelfRegistrable()
}

func validateUrgencyLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UrgencyLevel(value).IsValid()
}

// targets of a manual status change; "active" is only ever the initial state
func validateRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.RequestStatus(value).IsTerminal()
}

func validateResponseAction(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "accept", "decline":
		return true
	default:
		return false
	}
}
