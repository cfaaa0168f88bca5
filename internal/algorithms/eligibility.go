package algorithms

import (
	"time"

	"bloodbank_backend/internal/models"
)

// DonationCooldownDays is the minimum gap between two donations.
const DonationCooldownDays = 56

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(models.DateOnly(b).Sub(models.DateOnly(a)).Hours() / 24)
}

// CanDonate reports whether a donor whose last donation was on lastDonation
// may donate on today. A donor with no recorded donation is always eligible.
func CanDonate(lastDonation *time.Time, today time.Time) bool {
	if lastDonation == nil {
		return true
	}
	return daysBetween(*lastDonation, today) >= DonationCooldownDays
}

// NextEligibleDate is the first day CanDonate turns true, or nil when it already is.
func NextEligibleDate(lastDonation *time.Time, today time.Time) *time.Time {
	if CanDonate(lastDonation, today) {
		return nil
	}
	next := models.DateOnly(*lastDonation).AddDate(0, 0, DonationCooldownDays)
	return &next
}

// Age returns whole years elapsed since birth as of today.
func Age(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}
