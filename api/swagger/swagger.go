package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LMS Teacher Availability & Slot API",
        "description": "Weekly availability templates and bookable hour slots for LMS teachers.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Availability", "description": "Recurring weekday/weekend availability per teacher"},
        {"name": "TimeSlots", "description": "Hour long bookable slots"},
        {"name": "Health", "description": "Health checks and metrics"}
    ],
    "paths": {
        "/teachers/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get teacher availability",
                "description": "404 when the teacher never saved availability; meta.defaults then holds the template clients fall back to.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AvailabilityEnvelope"}},
                    "404": {"description": "Availability not set or teacher not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Create or overwrite teacher availability",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AvailabilityEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/time-slots": {
            "get": {
                "tags": ["TimeSlots"],
                "summary": "List a teacher's time slots ordered by date and start",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TimeSlotListEnvelope"}},
                    "400": {"description": "Invalid date or range", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}/time-slots/export": {
            "get": {
                "tags": ["TimeSlots"],
                "summary": "Download a teacher's time slots",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/time-slots/bulk": {
            "post": {
                "tags": ["TimeSlots"],
                "summary": "Bulk create hour long time slots",
                "description": "Existing and overlapping slots are skipped; dates producing nothing are listed in per_date_errors.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkCreateTimeSlotsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/BulkCreateEnvelope"}},
                    "400": {"description": "INVALID_DATE, INVALID_RANGE or VALIDATION_ERROR", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Teacher not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/time-slots/{id}": {
            "delete": {
                "tags": ["TimeSlots"],
                "summary": "Delete an available time slot",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot is booked or blocked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "UpsertAvailabilityRequest": {
            "type": "object",
            "properties": {
                "weekday_available": {"type": "boolean"},
                "weekday_start": {"type": "string", "example": "09:00"},
                "weekday_end": {"type": "string", "example": "17:00"},
                "weekend_available": {"type": "boolean"},
                "weekend_start": {"type": "string", "example": "10:00"},
                "weekend_end": {"type": "string", "example": "14:00"}
            }
        },
        "TeacherAvailability": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "weekday_available": {"type": "boolean"},
                "weekday_start": {"type": "string"},
                "weekday_end": {"type": "string"},
                "weekend_available": {"type": "boolean"},
                "weekend_start": {"type": "string"},
                "weekend_end": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "BulkCreateTimeSlotsRequest": {
            "type": "object",
            "properties": {
                "teacher_id": {"type": "string"},
                "slot_dates": {"type": "array", "items": {"type": "string", "format": "date"}},
                "start_time": {"type": "string", "example": "09:00"},
                "end_time": {"type": "string", "example": "11:00"}
            },
            "required": ["teacher_id", "slot_dates", "start_time", "end_time"]
        },
        "TimeSlot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "slot_date": {"type": "string", "format": "date"},
                "slot_start": {"type": "string", "example": "09:00"},
                "slot_end": {"type": "string", "example": "10:00"},
                "status": {"type": "string", "enum": ["available", "booked", "blocked"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "SkippedSlot": {
            "type": "object",
            "properties": {
                "slot_date": {"type": "string", "format": "date"},
                "slot_start": {"type": "string"},
                "slot_end": {"type": "string"},
                "reason": {"type": "string", "enum": ["duplicate", "overlap"]}
            }
        },
        "BulkCreateTimeSlotsResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}},
                "skipped": {"type": "array", "items": {"$ref": "#/definitions/SkippedSlot"}},
                "per_date_errors": {"type": "object", "additionalProperties": {"type": "string"}}
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
        },
        "AvailabilityEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/TeacherAvailability"}
            }
        },
        "TimeSlotListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/TimeSlot"}},
                "meta": {"type": "object"}
            }
        },
        "BulkCreateEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/BulkCreateTimeSlotsResponse"},
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
