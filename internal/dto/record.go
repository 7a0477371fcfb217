package dto

import "github.com/Alkan41/yakit-takip-api/internal/models"

// RecordFilter narrows a fuel record search. Empty fields match everything;
// date bounds are inclusive calendar days.
type RecordFilter struct {
	RecordNo       string `form:"recordNo" json:"recordNo"`
	Kind           string `form:"recordType" json:"recordType"`
	PersonnelName  string `form:"personnelName" json:"personnelName"`
	Location       string `form:"location" json:"location"`
	TailNumber     string `form:"tailNumber" json:"tailNumber"`
	TankerPlate    string `form:"tankerPlate" json:"tankerPlate"`
	ReceivingPlate string `form:"receivingTankerPlate" json:"receivingTankerPlate"`
	FillingPlate   string `form:"fillingTankerPlate" json:"fillingTankerPlate"`
	ReceiptNo      string `form:"receiptNumber" json:"receiptNumber"`
	StartDate      string `form:"startDate" json:"startDate"`
	EndDate        string `form:"endDate" json:"endDate"`
}

// ImportRecordsRequest carries rows parsed out of an uploaded Excel file,
// already in sheet-column form.
type ImportRecordsRequest struct {
	Rows []RowObject `json:"rows" binding:"required"`
}

// PanelData is the admin panel bootstrap snapshot. Admin rows are reduced to
// their public fields; credentials never leave the server.
type PanelData struct {
	FuelRecords []models.FuelRecord `json:"fuelRecords"`
	Aircrafts   []models.Aircraft   `json:"aircrafts"`
	Tankers     []models.Tanker     `json:"tankers"`
	Personnel   []models.Personnel  `json:"personnel"`
	Admins      []models.AdminInfo  `json:"admins"`
	Airports    []models.Airport    `json:"airports"`
}
