package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ChangeSet maps flat field names to their requested values. Values are kept
// as canonical strings; the wire may deliver numbers for fuel amounts.
type ChangeSet map[string]string

// UnmarshalJSON accepts string and numeric values, storing numbers verbatim
// so decimal amounts survive without float rounding.
func (c *ChangeSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	set := make(ChangeSet, len(raw))
	for key, value := range raw {
		text := strings.TrimSpace(string(value))
		if text == "null" {
			set[key] = ""
			continue
		}
		if len(text) > 0 && text[0] == '"' {
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("change %q: %w", key, err)
			}
			set[key] = s
			continue
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Errorf("change %q: unsupported value %s", key, text)
		}
		set[key] = text
	}
	*c = set
	return nil
}

// ApprovalRequest is a pending edit request against a fuel record. The
// original record is snapshotted at submission time so the resolve step can
// detect that the live row has since changed or disappeared.
type ApprovalRequest struct {
	ID               string     `json:"id"`
	OriginalRecord   FuelRecord `json:"originalRecord"`
	RequestedChanges ChangeSet  `json:"requestedChanges"`
	RequesterName    string     `json:"requesterName"`
	Timestamp        string     `json:"timestamp"`
}

// PersonnelApprovalRequest is a pending request to add a person to the
// personnel roster.
type PersonnelApprovalRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Job       string `json:"job"`
	Timestamp string `json:"timestamp"`
}

// Approval request sheets keep the wire field names as headers, with the
// record snapshot and change set embedded as JSON text.
const (
	ColRequestID        = "id"
	ColOriginalRecord   = "originalRecord"
	ColRequestedChanges = "requestedChanges"
	ColRequesterName    = "requesterName"
	ColTimestamp        = "timestamp"
	ColPersonnelReqName = "name"
	ColPersonnelReqJob  = "job"
)

// ApprovalRequestColumns returns the column order of the edit request sheet.
func ApprovalRequestColumns() []string {
	return []string{ColRequestID, ColOriginalRecord, ColRequestedChanges, ColRequesterName, ColTimestamp}
}

// PersonnelApprovalRequestColumns returns the column order of the personnel
// request sheet.
func PersonnelApprovalRequestColumns() []string {
	return []string{ColRequestID, ColPersonnelReqName, ColPersonnelReqJob, ColTimestamp}
}

// ToSheetRow serializes the request for storage, embedding the snapshot and
// change set as JSON text.
func (a ApprovalRequest) ToSheetRow() (map[string]string, error) {
	original, err := json.Marshal(a.OriginalRecord)
	if err != nil {
		return nil, fmt.Errorf("marshal original record: %w", err)
	}
	changes, err := json.Marshal(a.RequestedChanges)
	if err != nil {
		return nil, fmt.Errorf("marshal requested changes: %w", err)
	}
	return map[string]string{
		ColRequestID:        a.ID,
		ColOriginalRecord:   string(original),
		ColRequestedChanges: string(changes),
		ColRequesterName:    a.RequesterName,
		ColTimestamp:        a.Timestamp,
	}, nil
}

// ApprovalRequestFromSheetRow rebuilds a request from its sheet row.
func ApprovalRequestFromSheetRow(row map[string]string) (ApprovalRequest, error) {
	req := ApprovalRequest{
		ID:            row[ColRequestID],
		RequesterName: row[ColRequesterName],
		Timestamp:     row[ColTimestamp],
	}
	if err := json.Unmarshal([]byte(row[ColOriginalRecord]), &req.OriginalRecord); err != nil {
		return ApprovalRequest{}, fmt.Errorf("request %s: original record: %w", req.ID, err)
	}
	if err := json.Unmarshal([]byte(row[ColRequestedChanges]), &req.RequestedChanges); err != nil {
		return ApprovalRequest{}, fmt.Errorf("request %s: requested changes: %w", req.ID, err)
	}
	return req, nil
}

// ToSheetRow serializes the personnel request for storage.
func (p PersonnelApprovalRequest) ToSheetRow() map[string]string {
	return map[string]string{
		ColRequestID:        p.ID,
		ColPersonnelReqName: p.Name,
		ColPersonnelReqJob:  p.Job,
		ColTimestamp:        p.Timestamp,
	}
}

// PersonnelApprovalRequestFromSheetRow rebuilds a personnel request from its
// sheet row.
func PersonnelApprovalRequestFromSheetRow(row map[string]string) PersonnelApprovalRequest {
	return PersonnelApprovalRequest{
		ID:        row[ColRequestID],
		Name:      row[ColPersonnelReqName],
		Job:       row[ColPersonnelReqJob],
		Timestamp: row[ColTimestamp],
	}
}
