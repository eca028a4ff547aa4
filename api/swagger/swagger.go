package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Land Administration API",
        "description": "Planning division backend for inter-division legal requests, parcels and spatial evidence",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "LegalRequests", "description": "Inter-division legal request lifecycle"},
        {"name": "Documents", "description": "Request attachments"},
        {"name": "Notifications", "description": "Per-user alerts"},
        {"name": "SpatialEvidence", "description": "Geolocated field observations"},
        {"name": "Parcels", "description": "Land parcel registry and GIS layer"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and receive an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/legal-requests": {
            "get": {
                "tags": ["LegalRequests"],
                "summary": "List legal requests",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "Comma separated statuses"},
                    {"name": "urgency", "in": "query", "type": "string"},
                    {"name": "legal_case_number", "in": "query", "type": "string"},
                    {"name": "assigned_to", "in": "query", "type": "string"},
                    {"name": "parcel_id", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Submit a legal request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLegalRequestRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/legal-requests/unread-count": {
            "get": {
                "tags": ["LegalRequests"],
                "summary": "Count requests awaiting division action",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/legal-requests/export": {
            "get": {
                "tags": ["LegalRequests"],
                "summary": "Export the request register",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/legal-requests/{id}": {
            "get": {
                "tags": ["LegalRequests"],
                "summary": "Get legal request detail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/legal-requests/{id}/assign": {
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Assign a planning officer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignOfficerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invalid state"}
                }
            }
        },
        "/legal-requests/{id}/transition": {
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Move a request to a new status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invalid transition"}
                }
            }
        },
        "/legal-requests/{id}/response": {
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Submit the division response",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitResponseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Invalid state"}
                }
            }
        },
        "/legal-requests/{id}/withdraw": {
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Withdraw a request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/WithdrawRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/legal-requests/{id}/extend-deadline": {
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Extend the request deadline",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExtendDeadlineRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/legal-requests/{id}/comments": {
            "post": {
                "tags": ["LegalRequests"],
                "summary": "Add a comment to the activity trail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/legal-requests/{id}/activity": {
            "get": {
                "tags": ["LegalRequests"],
                "summary": "List the request activity trail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/legal-requests/{id}/letter": {
            "get": {
                "tags": ["LegalRequests"],
                "summary": "Download the formal response letter",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"},
                    "409": {"description": "No response to print"}
                }
            }
        },
        "/legal-requests/{id}/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "List documents on a legal request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Documents"],
                "summary": "Attach a document to a legal request",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {"name": "document_type", "in": "formData", "required": true, "type": "string"},
                    {"name": "direction", "in": "formData", "required": true, "type": "string", "enum": ["from_legal", "to_legal"]}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/documents/{id}/download-url": {
            "get": {
                "tags": ["Documents"],
                "summary": "Issue a signed download token",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/documents/download": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download a document by signed token",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List my notifications",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "unread_only", "in": "query", "type": "boolean"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Mark a notification read",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/notifications/{id}/dismiss": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Dismiss a notification",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/spatial-evidence": {
            "get": {
                "tags": ["SpatialEvidence"],
                "summary": "List spatial evidence",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "request_id", "in": "query", "type": "string"},
                    {"name": "parcel_id", "in": "query", "type": "string"},
                    {"name": "inspection_id", "in": "query", "type": "string"},
                    {"name": "evidence_type", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["SpatialEvidence"],
                "summary": "Record spatial evidence",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSpatialEvidenceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parcels": {
            "get": {
                "tags": ["Parcels"],
                "summary": "List land parcels",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "parcel_number", "in": "query", "type": "string"},
                    {"name": "zoning_code", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parcels/geojson": {
            "get": {
                "tags": ["Parcels"],
                "summary": "Get the parcel boundary layer",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "GeoJSON FeatureCollection"}
                }
            }
        },
        "/parcels/{id}": {
            "get": {
                "tags": ["Parcels"],
                "summary": "Get one parcel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/parcels/{id}/legal-info": {
            "get": {
                "tags": ["Parcels"],
                "summary": "Get a parcel with its legal context",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateLegalRequestRequest": {
            "type": "object",
            "required": ["request_type", "subject", "legal_officer_name"],
            "properties": {
                "request_type": {"type": "string"},
                "subject": {"type": "string"},
                "description": {"type": "string"},
                "urgency": {"type": "string", "enum": ["low", "normal", "high", "urgent"]},
                "legal_officer_name": {"type": "string"},
                "legal_officer_email": {"type": "string"},
                "legal_officer_phone": {"type": "string"},
                "legal_case_number": {"type": "string"},
                "legal_division_ref": {"type": "string"},
                "parcel_id": {"type": "string"},
                "application_id": {"type": "string"},
                "sla_days": {"type": "integer"},
                "due_date": {"type": "string", "format": "date-time"}
            }
        },
        "AssignOfficerRequest": {
            "type": "object",
            "required": ["officer_id"],
            "properties": {
                "officer_id": {"type": "string"}
            }
        },
        "TransitionRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"},
                "comment": {"type": "string"}
            }
        },
        "SubmitResponseRequest": {
            "type": "object",
            "required": ["response_summary"],
            "properties": {
                "response_summary": {"type": "string"},
                "findings": {"type": "string"},
                "recommendations": {"type": "string"}
            }
        },
        "WithdrawRequest": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"}
            }
        },
        "ExtendDeadlineRequest": {
            "type": "object",
            "required": ["due_date"],
            "properties": {
                "due_date": {"type": "string", "format": "date-time"},
                "comment": {"type": "string"}
            }
        },
        "AddCommentRequest": {
            "type": "object",
            "required": ["comment"],
            "properties": {
                "comment": {"type": "string"}
            }
        },
        "CreateSpatialEvidenceRequest": {
            "type": "object",
            "required": ["evidence_type"],
            "properties": {
                "request_id": {"type": "string"},
                "parcel_id": {"type": "string"},
                "inspection_id": {"type": "string"},
                "evidence_type": {"type": "string"},
                "description": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "accuracy_meters": {"type": "number"},
                "photo_url": {"type": "string"},
                "captured_at": {"type": "string", "format": "date-time"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
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
