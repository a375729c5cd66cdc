package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "KPI Export Gateway",
        "description": "Exports KPI group schedules into Google Calendar",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Groups", "description": "Group list and schedules"},
        {"name": "Auth", "description": "OAuth popup sessions"},
        {"name": "Exports", "description": "Schedule export jobs"},
        {"name": "Preferences", "description": "Per-device wizard preferences"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/groups": {
            "get": {
                "tags": ["Groups"],
                "summary": "List group names",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Prefix filter, transliteration-aware"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/groups/{name}/schedule": {
            "get": {
                "tags": ["Groups"],
                "summary": "Get a group's schedule",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "lastName", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/sessions": {
            "post": {
                "tags": ["Auth"],
                "summary": "Open an OAuth popup session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/sessions/{id}/fragment": {
            "post": {
                "tags": ["Auth"],
                "summary": "Deliver the OAuth redirect fragment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DepositFragmentRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Start a schedule export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Get export job progress",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/preferences/{deviceId}": {
            "get": {
                "tags": ["Preferences"],
                "summary": "Get device preferences",
                "parameters": [
                    {"name": "deviceId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Preferences"],
                "summary": "Replace device preferences",
                "parameters": [
                    {"name": "deviceId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePreferencesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ScheduleEntry": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "day": {"type": "integer"},
                "index": {"type": "integer"},
                "names": {"type": "array", "items": {"type": "string"}},
                "lecturers": {"type": "array", "items": {"type": "string"}},
                "locations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "GroupSchedule": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/ScheduleEntry"}}
            }
        },
        "AuthSessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "authUrl": {"type": "string"}
            }
        },
        "DepositFragmentRequest": {
            "type": "object",
            "properties": {
                "fragment": {"type": "string"}
            },
            "required": ["fragment"]
        },
        "CreateExportRequest": {
            "type": "object",
            "properties": {
                "group": {"type": "string"},
                "calendarName": {"type": "string"},
                "studentName": {"type": "string"},
                "authSessionId": {"type": "string"},
                "deviceId": {"type": "string"}
            },
            "required": ["group", "calendarName", "authSessionId"]
        },
        "ExportStatusResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"},
                "completed": {"type": "integer"},
                "total": {"type": "integer"},
                "created": {"type": "integer"},
                "failed": {"type": "integer"},
                "calendarId": {"type": "string"},
                "partiallyCompleted": {"type": "boolean"},
                "error": {"type": "string"},
                "finishedAt": {"type": "string"}
            }
        },
        "UpdatePreferencesRequest": {
            "type": "object",
            "properties": {
                "group": {"type": "string"},
                "calendarName": {"type": "string"},
                "studentName": {"type": "string"},
                "authIntroShown": {"type": "boolean"}
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
