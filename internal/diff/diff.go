// Package diff computes the change set between a live fuel record and an
// edited copy. Dates compare on the calendar day and amounts compare as
// decimals, so formatting drift between the store and the entry form never
// produces phantom edits.
package diff

import (
	"github.com/Alkan41/yakit-takip-api/internal/models"
)

// identity and derived fields are never part of a change set. The record
// number and kind are fixed at creation; tanker display fields are computed
// from the kind-specific values.
var skipAlways = map[string]bool{
	models.FieldID:         true,
	models.FieldRecordNo:   true,
	models.FieldRecordType: true,
}

var skipForTankers = map[string]bool{
	models.FieldPersonnelName: true,
	models.FieldLocationType:  true,
}

// Changes returns the fields of edited whose values differ semantically from
// original. An identical pair yields an empty set.
func Changes(original, edited models.FuelRecord) models.ChangeSet {
	origFields := original.Fields()
	editFields := edited.Fields()

	skipDerived := derivedFields(original.Kind)

	changes := models.ChangeSet{}
	for field, editedValue := range editFields {
		if skipAlways[field] || skipDerived[field] {
			continue
		}
		if !Equivalent(field, origFields[field], editedValue) {
			changes[field] = editedValue
		}
	}
	return changes
}

// Equivalent reports whether two raw values mean the same thing for the
// given field.
func Equivalent(field, a, b string) bool {
	switch field {
	case models.FieldDate:
		dayA, okA := models.ParseSheetDate(a)
		dayB, okB := models.ParseSheetDate(b)
		if okA && okB {
			return dayA == dayB
		}
		return a == b
	case models.FieldFuelAmount:
		return models.ParseFuelAmount(a).Equal(models.ParseFuelAmount(b))
	default:
		return a == b
	}
}

func derivedFields(kind models.RecordKind) map[string]bool {
	switch kind {
	case models.KindTankerFill:
		return skipForTankers
	case models.KindTankerTransfer:
		skip := map[string]bool{models.FieldLocation: true}
		for field := range skipForTankers {
			skip[field] = true
		}
		return skip
	default:
		return nil
	}
}
