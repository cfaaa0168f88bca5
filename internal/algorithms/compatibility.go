package algorithms

import "bloodbank_backend/internal/models"

// compatibleDonors maps a recipient blood type to the donor types it may receive.
// Hand-maintained; keep the direction recipient -> donors.
var compatibleDonors = map[models.BloodType][]models.BloodType{
	models.BloodTypeAPos:  {models.BloodTypeAPos, models.BloodTypeANeg, models.BloodTypeOPos, models.BloodTypeONeg},
	models.BloodTypeANeg:  {models.BloodTypeANeg, models.BloodTypeONeg},
	models.BloodTypeBPos:  {models.BloodTypeBPos, models.BloodTypeBNeg, models.BloodTypeOPos, models.BloodTypeONeg},
	models.BloodTypeBNeg:  {models.BloodTypeBNeg, models.BloodTypeONeg},
	models.BloodTypeABPos: {models.BloodTypeAPos, models.BloodTypeANeg, models.BloodTypeBPos, models.BloodTypeBNeg, models.BloodTypeABPos, models.BloodTypeABNeg, models.BloodTypeOPos, models.BloodTypeONeg},
	models.BloodTypeABNeg: {models.BloodTypeANeg, models.BloodTypeBNeg, models.BloodTypeABNeg, models.BloodTypeONeg},
	models.BloodTypeOPos:  {models.BloodTypeOPos, models.BloodTypeONeg},
	models.BloodTypeONeg:  {models.BloodTypeONeg},
}

// rarity scores, rarer types score higher
var urgencyScores = map[models.BloodType]int{
	models.BloodTypeABNeg: 8,
	models.BloodTypeABPos: 7,
	models.BloodTypeBNeg:  6,
	models.BloodTypeANeg:  5,
	models.BloodTypeONeg:  4,
	models.BloodTypeBPos:  3,
	models.BloodTypeAPos:  2,
	models.BloodTypeOPos:  1,
}

// CompatibleDonorTypes returns the donor types a recipient of the given type can receive.
// Unknown types yield an empty slice. The result is a fresh copy.
func CompatibleDonorTypes(recipient models.BloodType) []models.BloodType {
	donors, ok := compatibleDonors[recipient]
	if !ok {
		return []models.BloodType{}
	}
	out := make([]models.BloodType, len(donors))
	copy(out, donors)
	return out
}

// UrgencyScore ranks a blood type by rarity in [1,8]. Unknown types score 1.
func UrgencyScore(bt models.BloodType) int {
	if score, ok := urgencyScores[bt]; ok {
		return score
	}
	return 1
}

// NotificationTargetTypes is the set of donor blood types a new request is announced to:
// the requested type itself plus, unless it is O-, every compatible donor type.
// Order is stable and duplicates are removed.
func NotificationTargetTypes(requested models.BloodType) []models.BloodType {
	targets := []models.BloodType{requested}
	if requested != models.BloodTypeONeg {
		targets = append(targets, CompatibleDonorTypes(requested)...)
	}

	seen := make(map[models.BloodType]struct{}, len(targets))
	out := make([]models.BloodType, 0, len(targets))
	for _, bt := range targets {
		if _, dup := seen[bt]; dup {
			continue
		}
		seen[bt] = struct{}{}
		out = append(out, bt)
	}
	return out
}
