package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Calbook API",
        "description": "Scheduling and booking service: event types, availability schedules, slot lookup and bookings",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Event Types", "description": "Bookable meeting templates"},
        {"name": "Availability", "description": "Weekly availability schedules"},
        {"name": "Slots", "description": "Bookable slot lookup"},
        {"name": "Bookings", "description": "Booking lifecycle"}
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
        "/event-types": {
            "get": {
                "tags": ["Event Types"],
                "summary": "List event types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Event Types"],
                "summary": "Create event type",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventTypeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Slug already exists"}
                }
            }
        },
        "/event-types/{id}": {
            "get": {
                "tags": ["Event Types"],
                "summary": "Get event type by ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Event Types"],
                "summary": "Update event type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Event Types"],
                "summary": "Delete event type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/event-types/slug/{slug}": {
            "get": {
                "tags": ["Event Types"],
                "summary": "Get visible event type by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or hidden"}
                }
            }
        },
        "/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List availability rows across all schedules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Replace all availability schedules",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/availability/schedules": {
            "post": {
                "tags": ["Availability"],
                "summary": "Create availability schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Name already exists"}
                }
            }
        },
        "/availability/schedules/{id}": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get schedule with its weekly slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Update schedule metadata and reconcile slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Availability"],
                "summary": "Delete schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "List bookable slots for an event type on a date",
                "parameters": [
                    {"name": "eventTypeId", "in": "query", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing or invalid parameters"},
                    "404": {"description": "Event type not found or hidden"}
                }
            }
        },
        "/bookings": {
            "get": {
                "tags": ["Bookings"],
                "summary": "List bookings",
                "parameters": [
                    {"name": "filter", "in": "query", "type": "string", "description": "upcoming, past, canceled or unconfirmed"},
                    {"name": "status", "in": "query", "type": "string", "description": "confirmed, unconfirmed, canceled or all"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation or duration error"},
                    "409": {"description": "Slot already booked"}
                }
            }
        },
        "/bookings/{id}/cancel": {
            "put": {
                "tags": ["Bookings"],
                "summary": "Cancel a booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "token", "in": "query", "type": "string", "description": "Manage token issued at booking time"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Invalid manage token"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/bookings/{id}/calendar.ics": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Download booking as iCalendar",
                "produces": ["text/calendar"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "ICS payload"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/bookings/export": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Export bookings as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv or pdf"},
                    {"name": "filter", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "EventTypeRequest": {
            "type": "object",
            "required": ["title", "slug", "duration"],
            "properties": {
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "duration": {"type": "integer", "description": "Minutes"},
                "location": {"type": "string"},
                "is_visible": {"type": "boolean"},
                "allow_multiple_durations": {"type": "boolean"},
                "user_slug": {"type": "string"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "timezone": {"type": "string"},
                "is_default": {"type": "boolean"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/SlotInput"}}
            }
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "timezone": {"type": "string"},
                "is_default": {"type": "boolean"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/SlotInput"}}
            }
        },
        "ReplaceAvailabilityRequest": {
            "type": "object",
            "required": ["availability"],
            "properties": {
                "availability": {"type": "array", "items": {"$ref": "#/definitions/AvailabilityEntry"}}
            }
        },
        "AvailabilityEntry": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "description": "Schedule name the row belongs to"},
                "timezone": {"type": "string"},
                "is_default": {"type": "boolean"},
                "day_of_week": {"type": "integer", "description": "0=Sunday .. 6=Saturday"},
                "start_time": {"type": "string", "example": "09:00:00"},
                "end_time": {"type": "string", "example": "17:00:00"}
            }
        },
        "SlotInput": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer"},
                "start_time": {"type": "string", "example": "09:00:00"},
                "end_time": {"type": "string", "example": "17:00:00"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "required": ["event_type_id", "attendee_name", "attendee_email", "start_time", "end_time"],
            "properties": {
                "event_type_id": {"type": "integer"},
                "attendee_name": {"type": "string"},
                "attendee_email": {"type": "string"},
                "attendee_timezone": {"type": "string"},
                "start_time": {"type": "string", "format": "date-time"},
                "end_time": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"}
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
