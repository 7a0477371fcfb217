// Package dto defines the request and response shapes of both API surfaces:
// the legacy single-endpoint RPC the frontend already speaks and the REST
// routes that replace it.
package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Alkan41/yakit-takip-api/internal/models"
)

// RPC action names, kept verbatim from the legacy backend so the deployed
// frontend works against this server unchanged.
const (
	ActionGetAdminPanelData            = "onGetAdminPanelData"
	ActionGetApprovalRequests          = "onGetApprovalRequests"
	ActionGetPersonnelApprovalRequests = "onGetPersonnelApprovalRequests"
	ActionAddRecord                    = "onAddRecord"
	ActionAddPersonnelRequest          = "onAddPersonnelRequest"
	ActionAddApprovalRequest           = "onAddApprovalRequest"
	ActionBulkUpdate                   = "onBulkUpdate"
	ActionApproveRequest               = "onApproveRequest"
	ActionRejectRequest                = "onRejectRequest"
	ActionApprovePersonnelRequest      = "onApprovePersonnelRequest"
	ActionRejectPersonnelRequest       = "onRejectPersonnelRequest"
)

// RPCRequest is the legacy envelope: one action name plus its payload.
type RPCRequest struct {
	Action  string          `json:"action" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// RPCResponse is the legacy response envelope. The transport status is
// always 200; Status and Success carry the outcome.
type RPCResponse struct {
	Status  string      `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RPCSuccess builds a success envelope.
func RPCSuccess(message string, data interface{}) RPCResponse {
	return RPCResponse{Status: "success", Success: true, Message: message, Data: data}
}

// RPCError builds an error envelope.
func RPCError(message string) RPCResponse {
	return RPCResponse{Status: "error", Success: false, Message: message}
}

// RowObject is a loosely typed sheet-row payload keyed by column header.
// The legacy frontend sends cell values as strings or numbers.
type RowObject map[string]string

// UnmarshalJSON flattens scalar JSON values to strings, keeping numeric
// text verbatim.
func (r *RowObject) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	row := make(RowObject, len(raw))
	for key, value := range raw {
		text := strings.TrimSpace(string(value))
		if text == "null" {
			row[key] = ""
			continue
		}
		if len(text) > 0 && text[0] == '"' {
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("cell %q: %w", key, err)
			}
			row[key] = s
			continue
		}
		if text == "true" || text == "false" {
			row[key] = text
			continue
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Errorf("cell %q: unsupported value %s", key, text)
		}
		row[key] = text
	}
	*r = row
	return nil
}

// ResolveRequestPayload identifies the approval request to approve or
// reject. The legacy approve payload also carries record copies; they are
// ignored because the stored snapshot is authoritative.
type ResolveRequestPayload struct {
	RequestID string `json:"requestId"`
}

// BulkUpdatePayload rewrites whole reference sheets at once. Only the
// datasets present in the payload are touched.
type BulkUpdatePayload struct {
	AircraftData  []models.Aircraft    `json:"aircraftData"`
	TankerData    []models.Tanker      `json:"tankerData"`
	PersonnelList []models.Personnel   `json:"personnelList"`
	AirportList   []models.Airport     `json:"airportList"`
	Admins        []AdminUpsert        `json:"admins"`
	FuelRecords   []models.FuelRecord  `json:"fuelRecords"`
}

// AdminUpsert is an admin row in a bulk update or user-management call.
type AdminUpsert struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}
