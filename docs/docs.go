// Package docs registers the OpenAPI document served under /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Detailed health with model states and thresholds",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/api/moderate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Moderation"],
                "summary": "Moderate a single listing",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ModerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ModerateResponse"}},
                    "400": {"description": "Malformed listing", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/moderate/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Moderation"],
                "summary": "Moderate a batch of listings",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/BatchModerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/BatchModerateResponse"}},
                    "400": {"description": "Invalid batch", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/moderations/{listing_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Moderation"],
                "summary": "Latest stored moderation result of a listing",
                "parameters": [
                    {"in": "path", "name": "listing_id", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "501": {"description": "History disabled", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/config": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Config"],
                "summary": "Current thresholds, weights and model state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConfigResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Config"],
                "summary": "Update decision thresholds",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConfigResponse"}},
                    "400": {"description": "Invalid thresholds", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/models/reload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "Reload model artifacts from disk",
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "Invalid artifacts", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Build version",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "ModerateRequest": {
            "type": "object",
            "required": ["property"],
            "properties": {
                "property": {"type": "object"}
            }
        },
        "BatchModerateRequest": {
            "type": "object",
            "required": ["properties"],
            "properties": {
                "properties": {"type": "array", "items": {"type": "object"}}
            }
        },
        "UpdateConfigRequest": {
            "type": "object",
            "properties": {
                "auto_approve_threshold": {"type": "number"},
                "reject_threshold": {"type": "number"}
            }
        },
        "Thresholds": {
            "type": "object",
            "properties": {
                "auto_approve": {"type": "number"},
                "reject": {"type": "number"}
            }
        },
        "ModerateResponse": {
            "type": "object",
            "properties": {
                "listing_id": {"type": "string"},
                "overall_score": {"type": "number"},
                "decision": {"type": "string", "enum": ["auto_approved", "pending_review", "rejected"]},
                "decision_text": {"type": "string"},
                "details": {"type": "object"},
                "reasons": {"type": "array", "items": {"type": "string"}},
                "suggestions": {"type": "array", "items": {"type": "string"}},
                "price_analysis": {"type": "object"},
                "thresholds": {"$ref": "#/definitions/Thresholds"},
                "moderated_at": {"type": "string", "format": "date-time"}
            }
        },
        "BatchItem": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "result": {"$ref": "#/definitions/ModerateResponse"},
                "error": {"type": "string"},
                "property_id": {"type": "string"}
            }
        },
        "BatchModerateResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/BatchItem"}},
                "total": {"type": "integer"},
                "successful": {"type": "integer"},
                "failed": {"type": "integer"}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "models_loaded": {"type": "boolean"}
            }
        },
        "ConfigResponse": {
            "type": "object",
            "properties": {
                "thresholds": {"$ref": "#/definitions/Thresholds"},
                "weights": {"type": "object"},
                "models_status": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ListingGuard API",
	Description:      "Rental listing moderation: rule checks, price model and threshold decisions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
