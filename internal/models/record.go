package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind discriminates the three fueling event variants. The wire values
// match the frontend contract.
type RecordKind string

const (
	KindAircraftRefuel RecordKind = "personnel"
	KindTankerFill     RecordKind = "tankerDolum"
	KindTankerTransfer RecordKind = "tankerTransfer"
)

// Values stored in the "Kayıt Tipi" sheet column.
const (
	sheetKindAircraftRefuel = "Hava Aracı İkmal"
	sheetKindTankerFill     = "Tanker Dolum"
	sheetKindTankerTransfer = "Tanker Transfer"
)

// Flat field names shared by the JSON contract, change sets and the diff
// engine.
const (
	FieldID             = "id"
	FieldRecordNo       = "kayitNumarasi"
	FieldDate           = "date"
	FieldReceiptNo      = "receiptNumber"
	FieldFuelAmount     = "fuelAmount"
	FieldRecordType     = "recordType"
	FieldPersonnelID    = "personnelId"
	FieldPersonnelName  = "personnelName"
	FieldJobTitle       = "jobTitle"
	FieldLocationType   = "locationType"
	FieldLocation       = "location"
	FieldTailNumber     = "tailNumber"
	FieldCardNumber     = "cardNumber"
	FieldTankerPlate    = "tankerPlate"
	FieldReceivingPlate = "receivingTankerPlate"
	FieldFillingPlate   = "fillingTankerPlate"
)

// recordNoPlaceholderPrefix marks record numbers generated client-side before
// a durable number exists. The matcher must not trust them as identity.
const recordNoPlaceholderPrefix = "ID-"

// NewRecordNumber returns a fresh time-derived placeholder record number,
// mirroring the frontend's generator.
func NewRecordNumber(now time.Time) string {
	return recordNoPlaceholderPrefix + now.UTC().Format(time.RFC3339)
}

// IsPlaceholderRecordNo reports whether the record number cannot serve as a
// durable identity (empty or still carrying the generated placeholder prefix).
func IsPlaceholderRecordNo(recordNo string) bool {
	return recordNo == "" || strings.HasPrefix(recordNo, recordNoPlaceholderPrefix)
}

// AircraftRefuel carries the fields meaningful only for aircraft refueling
// events performed by a member of personnel.
type AircraftRefuel struct {
	PersonnelID   string
	PersonnelName string
	JobTitle      string
	TailNumber    string
	CardNumber    string
	LocationType  string
	Location      string
}

// TankerFill carries the fields meaningful only for filling a tanker at an
// airport.
type TankerFill struct {
	TankerPlate string
	Airport     string
}

// TankerTransfer carries the fields meaningful only for tanker-to-tanker
// transfers.
type TankerTransfer struct {
	ReceivingPlate string
	FillingPlate   string
}

// FuelRecord is one fueling or transfer event. Exactly one of the
// kind-specific payloads is populated, selected by Kind.
type FuelRecord struct {
	ID         string
	RecordNo   string
	Date       string // business date, YYYY-MM-DD
	ReceiptNo  string
	FuelAmount decimal.Decimal
	Kind       RecordKind

	Refuel   *AircraftRefuel
	Fill     *TankerFill
	Transfer *TankerTransfer

	// SheetRow is the 1-based row of this record in the backing sheet, set
	// when loaded from the store. Zero for records that were never persisted.
	SheetRow int
}

// DisplayName returns the personnel name used for display and legacy
// matching. Tanker events carry their kind label, as the original data does.
func (r FuelRecord) DisplayName() string {
	switch r.Kind {
	case KindAircraftRefuel:
		if r.Refuel != nil {
			return r.Refuel.PersonnelName
		}
	case KindTankerFill:
		return sheetKindTankerFill
	case KindTankerTransfer:
		return sheetKindTankerTransfer
	}
	return ""
}

// Location returns the human-readable location of the event.
func (r FuelRecord) Location() string {
	switch r.Kind {
	case KindAircraftRefuel:
		if r.Refuel != nil {
			return r.Refuel.Location
		}
	case KindTankerFill:
		if r.Fill != nil {
			return r.Fill.Airport
		}
	case KindTankerTransfer:
		if r.Transfer != nil {
			return fmt.Sprintf("%s -> %s", r.Transfer.FillingPlate, r.Transfer.ReceivingPlate)
		}
	}
	return ""
}

// Validate enforces the structural invariants: a known kind, exactly the
// matching payload present, and a non-negative fuel amount.
func (r FuelRecord) Validate() error {
	if r.FuelAmount.IsNegative() {
		return fmt.Errorf("fuel amount must not be negative")
	}
	switch r.Kind {
	case KindAircraftRefuel:
		if r.Refuel == nil || r.Fill != nil || r.Transfer != nil {
			return fmt.Errorf("aircraft refuel record requires exactly the refuel payload")
		}
	case KindTankerFill:
		if r.Fill == nil || r.Refuel != nil || r.Transfer != nil {
			return fmt.Errorf("tanker fill record requires exactly the fill payload")
		}
	case KindTankerTransfer:
		if r.Transfer == nil || r.Refuel != nil || r.Fill != nil {
			return fmt.Errorf("tanker transfer record requires exactly the transfer payload")
		}
	default:
		return fmt.Errorf("unknown record kind %q", r.Kind)
	}
	return nil
}

// Fields flattens the record into the shared field-name map consumed by the
// diff engine and change merging. Values are canonical strings.
func (r FuelRecord) Fields() map[string]string {
	fields := map[string]string{
		FieldRecordNo:      r.RecordNo,
		FieldDate:          r.Date,
		FieldReceiptNo:     r.ReceiptNo,
		FieldFuelAmount:    r.FuelAmount.String(),
		FieldRecordType:    string(r.Kind),
		FieldPersonnelName: r.DisplayName(),
		FieldLocation:      r.Location(),
	}
	switch r.Kind {
	case KindAircraftRefuel:
		if r.Refuel != nil {
			fields[FieldPersonnelID] = r.Refuel.PersonnelID
			fields[FieldJobTitle] = r.Refuel.JobTitle
			fields[FieldLocationType] = r.Refuel.LocationType
			fields[FieldTailNumber] = r.Refuel.TailNumber
			fields[FieldCardNumber] = r.Refuel.CardNumber
		}
	case KindTankerFill:
		if r.Fill != nil {
			fields[FieldLocationType] = sheetKindTankerFill
			fields[FieldTankerPlate] = r.Fill.TankerPlate
		}
	case KindTankerTransfer:
		if r.Transfer != nil {
			fields[FieldLocationType] = sheetKindTankerTransfer
			fields[FieldReceivingPlate] = r.Transfer.ReceivingPlate
			fields[FieldFillingPlate] = r.Transfer.FillingPlate
		}
	}
	return fields
}

// ApplyChanges overlays a change set onto a copy of the record. Keys that are
// not meaningful for the record's kind (and identity keys) are ignored, so a
// merge never moves a record across kinds or rewrites its durable number.
func (r FuelRecord) ApplyChanges(changes ChangeSet) FuelRecord {
	merged := r
	if r.Refuel != nil {
		cp := *r.Refuel
		merged.Refuel = &cp
	}
	if r.Fill != nil {
		cp := *r.Fill
		merged.Fill = &cp
	}
	if r.Transfer != nil {
		cp := *r.Transfer
		merged.Transfer = &cp
	}
	for key, value := range changes {
		switch key {
		case FieldDate:
			if normalized, ok := ParseSheetDate(value); ok {
				merged.Date = normalized
			}
		case FieldReceiptNo:
			merged.ReceiptNo = value
		case FieldFuelAmount:
			merged.FuelAmount = ParseFuelAmount(value)
		case FieldPersonnelID:
			if merged.Refuel != nil {
				merged.Refuel.PersonnelID = value
			}
		case FieldPersonnelName:
			if merged.Refuel != nil {
				merged.Refuel.PersonnelName = value
			}
		case FieldJobTitle:
			if merged.Refuel != nil {
				merged.Refuel.JobTitle = value
			}
		case FieldLocationType:
			if merged.Refuel != nil {
				merged.Refuel.LocationType = value
			}
		case FieldLocation:
			if merged.Refuel != nil {
				merged.Refuel.Location = value
			} else if merged.Fill != nil {
				merged.Fill.Airport = value
			}
		case FieldTailNumber:
			if merged.Refuel != nil {
				merged.Refuel.TailNumber = value
			}
		case FieldCardNumber:
			if merged.Refuel != nil {
				merged.Refuel.CardNumber = value
			}
		case FieldTankerPlate:
			if merged.Fill != nil {
				merged.Fill.TankerPlate = value
			}
		case FieldReceivingPlate:
			if merged.Transfer != nil {
				merged.Transfer.ReceivingPlate = value
			}
		case FieldFillingPlate:
			if merged.Transfer != nil {
				merged.Transfer.FillingPlate = value
			}
		}
	}
	return merged
}

// ParseFuelAmount coerces a raw cell or wire value into a decimal liter
// amount. Turkish locale comma separators are normalized; garbage becomes
// zero, matching the tolerant behavior of the original importer.
func ParseFuelAmount(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// flatRecord is the wire shape of a FuelRecord: one flat object per the
// frontend contract, optional fields present by record kind.
type flatRecord struct {
	ID             string          `json:"id,omitempty"`
	RecordNo       string          `json:"kayitNumarasi"`
	Date           string          `json:"date"`
	ReceiptNo      string          `json:"receiptNumber"`
	FuelAmount     json.RawMessage `json:"fuelAmount,omitempty"`
	Kind           RecordKind      `json:"recordType"`
	PersonnelID    string          `json:"personnelId,omitempty"`
	PersonnelName  string          `json:"personnelName,omitempty"`
	JobTitle       string          `json:"jobTitle,omitempty"`
	LocationType   string          `json:"locationType,omitempty"`
	Location       string          `json:"location,omitempty"`
	TailNumber     string          `json:"tailNumber,omitempty"`
	CardNumber     string          `json:"cardNumber,omitempty"`
	TankerPlate    string          `json:"tankerPlate,omitempty"`
	ReceivingPlate string          `json:"receivingTankerPlate,omitempty"`
	FillingPlate   string          `json:"fillingTankerPlate,omitempty"`
}

// MarshalJSON renders the record in the flat frontend shape.
func (r FuelRecord) MarshalJSON() ([]byte, error) {
	flat := flatRecord{
		ID:            r.ID,
		RecordNo:      r.RecordNo,
		Date:          r.Date,
		ReceiptNo:     r.ReceiptNo,
		FuelAmount:    json.RawMessage(r.FuelAmount.String()),
		Kind:          r.Kind,
		PersonnelName: r.DisplayName(),
		Location:      r.Location(),
	}
	switch r.Kind {
	case KindAircraftRefuel:
		if r.Refuel != nil {
			flat.PersonnelID = r.Refuel.PersonnelID
			flat.JobTitle = r.Refuel.JobTitle
			flat.LocationType = r.Refuel.LocationType
			flat.TailNumber = r.Refuel.TailNumber
			flat.CardNumber = r.Refuel.CardNumber
		}
	case KindTankerFill:
		if r.Fill != nil {
			flat.LocationType = sheetKindTankerFill
			flat.TankerPlate = r.Fill.TankerPlate
		}
	case KindTankerTransfer:
		if r.Transfer != nil {
			flat.LocationType = sheetKindTankerTransfer
			flat.ReceivingPlate = r.Transfer.ReceivingPlate
			flat.FillingPlate = r.Transfer.FillingPlate
		}
	}
	return json.Marshal(flat)
}

// UnmarshalJSON accepts the flat frontend shape and rebuilds the variant.
// Fuel amounts may arrive as JSON numbers or locale-formatted strings.
func (r *FuelRecord) UnmarshalJSON(data []byte) error {
	var flat flatRecord
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	rec := FuelRecord{
		ID:         flat.ID,
		RecordNo:   flat.RecordNo,
		Date:       flat.Date,
		ReceiptNo:  flat.ReceiptNo,
		FuelAmount: ParseFuelAmount(strings.Trim(string(flat.FuelAmount), `"`)),
		Kind:       flat.Kind,
	}
	switch flat.Kind {
	case KindAircraftRefuel:
		rec.Refuel = &AircraftRefuel{
			PersonnelID:   flat.PersonnelID,
			PersonnelName: flat.PersonnelName,
			JobTitle:      flat.JobTitle,
			LocationType:  flat.LocationType,
			Location:      flat.Location,
			TailNumber:    flat.TailNumber,
			CardNumber:    flat.CardNumber,
		}
	case KindTankerFill:
		rec.Fill = &TankerFill{
			TankerPlate: flat.TankerPlate,
			Airport:     flat.Location,
		}
	case KindTankerTransfer:
		rec.Transfer = &TankerTransfer{
			ReceivingPlate: flat.ReceivingPlate,
			FillingPlate:   flat.FillingPlate,
		}
	default:
		return fmt.Errorf("unknown record kind %q", flat.Kind)
	}
	*r = rec
	return nil
}

// Sheet column headers of the fuel records sheet. They must match the live
// spreadsheet (and the Excel files admins import) verbatim.
const (
	ColRecordNo        = "Kayıt No"
	ColDate            = "Tarih"
	ColKind            = "Kayıt Tipi"
	ColReceiptNo       = "Makbuz Numarası"
	ColFuelAmount      = "Yakıt Miktarı (lt)"
	ColTailNumber      = "Kuyruk Numarası"
	ColPersonnelName   = "Personel Adı"
	ColJobTitle        = "Mesleği"
	ColCardNumber      = "Kart Numarası"
	ColLocationType    = "İkmal Tipi"
	ColLocation        = "İkmal Konumu"
	ColFillTankerPlate = "Dolum Yapılan Tanker Plakası"
	ColFillAirport     = "Dolum Yapılan Hava Limanı"
	ColReceivingPlate  = "Yakıtı Alan Tanker Plakası"
	ColFillingPlate    = "Yakıtı Veren Tanker Plakası"
)

// FuelRecordColumns returns the canonical column order of the fuel records
// sheet.
func FuelRecordColumns() []string {
	return []string{
		ColDate, ColKind, ColReceiptNo, ColFuelAmount, ColTailNumber,
		ColPersonnelName, ColJobTitle, ColCardNumber, ColLocationType,
		ColLocation, ColFillTankerPlate, ColFillAirport, ColReceivingPlate,
		ColFillingPlate, ColRecordNo,
	}
}

// ToSheetRow flattens the record into sheet columns.
func (r FuelRecord) ToSheetRow() map[string]string {
	row := map[string]string{
		ColRecordNo:   r.RecordNo,
		ColDate:       r.Date,
		ColReceiptNo:  r.ReceiptNo,
		ColFuelAmount: r.FuelAmount.String(),
	}
	switch r.Kind {
	case KindAircraftRefuel:
		row[ColKind] = sheetKindAircraftRefuel
		if r.Refuel != nil {
			row[ColTailNumber] = r.Refuel.TailNumber
			row[ColPersonnelName] = r.Refuel.PersonnelName
			row[ColJobTitle] = r.Refuel.JobTitle
			row[ColCardNumber] = r.Refuel.CardNumber
			row[ColLocationType] = r.Refuel.LocationType
			row[ColLocation] = r.Refuel.Location
		}
	case KindTankerFill:
		row[ColKind] = sheetKindTankerFill
		if r.Fill != nil {
			row[ColFillTankerPlate] = r.Fill.TankerPlate
			row[ColFillAirport] = r.Fill.Airport
		}
	case KindTankerTransfer:
		row[ColKind] = sheetKindTankerTransfer
		if r.Transfer != nil {
			row[ColReceivingPlate] = r.Transfer.ReceivingPlate
			row[ColFillingPlate] = r.Transfer.FillingPlate
		}
	}
	return row
}

// FuelRecordFromSheetRow rebuilds a record from a sheet row. Rows with an
// unknown kind or an unparseable date are rejected; the caller skips them, as
// the original importer did.
func FuelRecordFromSheetRow(row map[string]string) (FuelRecord, error) {
	date, ok := ParseSheetDate(row[ColDate])
	if !ok {
		return FuelRecord{}, fmt.Errorf("unparseable date %q", row[ColDate])
	}
	rec := FuelRecord{
		RecordNo:   row[ColRecordNo],
		Date:       date,
		ReceiptNo:  row[ColReceiptNo],
		FuelAmount: ParseFuelAmount(row[ColFuelAmount]),
	}
	switch row[ColKind] {
	case sheetKindAircraftRefuel:
		rec.Kind = KindAircraftRefuel
		rec.Refuel = &AircraftRefuel{
			PersonnelName: row[ColPersonnelName],
			JobTitle:      row[ColJobTitle],
			TailNumber:    row[ColTailNumber],
			CardNumber:    row[ColCardNumber],
			LocationType:  row[ColLocationType],
			Location:      row[ColLocation],
		}
	case sheetKindTankerFill:
		rec.Kind = KindTankerFill
		rec.Fill = &TankerFill{
			TankerPlate: row[ColFillTankerPlate],
			Airport:     row[ColFillAirport],
		}
	case sheetKindTankerTransfer:
		rec.Kind = KindTankerTransfer
		rec.Transfer = &TankerTransfer{
			ReceivingPlate: row[ColReceivingPlate],
			FillingPlate:   row[ColFillingPlate],
		}
	default:
		return FuelRecord{}, fmt.Errorf("unknown record type %q", row[ColKind])
	}
	if rec.ID == "" {
		rec.ID = rec.RecordNo
	}
	return rec, nil
}
