// Package repository maps domain types onto workbook sheets and the optional
// Postgres audit trail and Redis cache.
package repository

// Sheet names of the canonical workbook. They match the production
// spreadsheet and must not be translated.
const (
	SheetFuelRecords               = "Yakıt Kayıtları verisi"
	SheetAircrafts                 = "Hava Aracı Verisi"
	SheetTankers                   = "Tanker Verisi"
	SheetPersonnel                 = "Personel Verisi"
	SheetAirports                  = "Hava Limanı Verisi"
	SheetAdmins                    = "Yöneticiler"
	SheetApprovalRequests          = "Onay Talepleri"
	SheetPersonnelApprovalRequests = "Personel Onay Talepleri"
)
