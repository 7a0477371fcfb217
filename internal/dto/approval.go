package dto

import "github.com/Alkan41/yakit-takip-api/internal/models"

// SubmitEditRequest asks to change an existing fuel record. The original
// record snapshot travels with the request; the server recomputes the
// effective change set before storing anything.
type SubmitEditRequest struct {
	ID               string            `json:"id"`
	OriginalRecord   models.FuelRecord `json:"originalRecord" binding:"required"`
	RequestedChanges models.ChangeSet  `json:"requestedChanges" binding:"required"`
	RequesterName    string            `json:"requesterName"`
	Timestamp        string            `json:"timestamp"`
}

// ApprovalSnapshot is the refreshed view returned after any resolve call, so
// the admin panel can redraw without a second round trip.
type ApprovalSnapshot struct {
	FuelRecords      []models.FuelRecord      `json:"fuelRecords"`
	ApprovalRequests []models.ApprovalRequest `json:"approvalRequests"`
}

// PersonnelSnapshot is the refreshed view returned after resolving a
// personnel request.
type PersonnelSnapshot struct {
	PersonnelList             []models.Personnel                `json:"personnelList"`
	PersonnelApprovalRequests []models.PersonnelApprovalRequest `json:"personnelApprovalRequests"`
}

// ResolveOutcome is the result of approving or rejecting an edit request.
// AlreadyProcessed marks the non-fatal case where another admin resolved the
// request first.
type ResolveOutcome struct {
	AlreadyProcessed bool             `json:"alreadyProcessed"`
	Message          string           `json:"message"`
	Snapshot         ApprovalSnapshot `json:"snapshot"`
}

// PersonnelResolveOutcome mirrors ResolveOutcome for personnel requests.
type PersonnelResolveOutcome struct {
	AlreadyProcessed bool              `json:"alreadyProcessed"`
	Message          string            `json:"message"`
	Snapshot         PersonnelSnapshot `json:"snapshot"`
}
