package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Yakıt Takip API",
        "description": "Fleet fuel record entry and approval backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "rpc", "description": "Legacy single-endpoint action dispatch"},
        {"name": "auth", "description": "Admin authentication"},
        {"name": "records", "description": "Fuel record store"},
        {"name": "approvals", "description": "Edit and personnel approval queues"},
        {"name": "references", "description": "Reference sheets and admin accounts"},
        {"name": "exports", "description": "Record exports"}
    ],
    "paths": {
        "/rpc": {
            "post": {
                "tags": ["rpc"],
                "summary": "Dispatch a legacy action envelope",
                "parameters": [
                    {"name": "envelope", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RPCRequest"}}
                ],
                "responses": {
                    "200": {"description": "Always 200, outcome in the envelope", "schema": {"$ref": "#/definitions/RPCResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/records": {
            "get": {
                "tags": ["records"],
                "summary": "List fuel records",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["records"],
                "summary": "Add a fuel record",
                "responses": {"201": {"description": "Created"}}
            },
            "put": {
                "tags": ["records"],
                "summary": "Replace the whole record store",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/records/search": {
            "get": {
                "tags": ["records"],
                "summary": "Filter fuel records",
                "parameters": [
                    {"name": "recordType", "in": "query", "type": "string"},
                    {"name": "personnelName", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/records/import": {
            "post": {
                "tags": ["records"],
                "summary": "Import legacy rows",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/approvals": {
            "get": {"tags": ["approvals"], "summary": "List pending edit requests", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["approvals"], "summary": "Submit an edit request", "responses": {"201": {"description": "Created"}}}
        },
        "/approvals/{id}/approve": {
            "post": {
                "tags": ["approvals"],
                "summary": "Approve an edit request",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "410": {"description": "Original record no longer exists"}}
            }
        },
        "/approvals/{id}/reject": {
            "post": {
                "tags": ["approvals"],
                "summary": "Reject an edit request",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/personnel-approvals": {
            "get": {"tags": ["approvals"], "summary": "List pending personnel requests", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["approvals"], "summary": "Submit a personnel request", "responses": {"201": {"description": "Created"}}}
        },
        "/personnel-approvals/{id}/approve": {
            "post": {
                "tags": ["approvals"],
                "summary": "Approve a personnel request",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/personnel-approvals/{id}/reject": {
            "post": {
                "tags": ["approvals"],
                "summary": "Reject a personnel request",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/panel": {
            "get": {"tags": ["references"], "summary": "Admin panel bootstrap snapshot", "responses": {"200": {"description": "OK"}}}
        },
        "/references": {
            "put": {"tags": ["references"], "summary": "Rewrite reference sheets", "responses": {"200": {"description": "OK"}}}
        },
        "/admins": {
            "post": {"tags": ["references"], "summary": "Add an admin account", "responses": {"201": {"description": "Created"}, "409": {"description": "Username taken"}}}
        },
        "/admins/{id}": {
            "delete": {
                "tags": ["references"],
                "summary": "Delete an admin account",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/exports/records": {
            "get": {
                "tags": ["exports"],
                "summary": "Export fuel records",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"]}
                ],
                "responses": {"200": {"description": "File attachment"}}
            }
        }
    },
    "definitions": {
        "RPCRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "payload": {"type": "object"}
            },
            "required": ["action"]
        },
        "RPCResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "error"]},
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
