// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/accounts": {
            "get": {
                "description": "List streaming accounts in insertion order. Every criterion accepts \"all\" for no restriction.",
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "List accounts",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive substring of the client name", "name": "search", "in": "query"},
                    {"type": "string", "description": "Exact platform", "name": "platform", "in": "query"},
                    {"type": "string", "description": "Exact account type", "name": "accountType", "in": "query"},
                    {"type": "string", "description": "Exact stored status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Computed lifecycle (active, expiring, expired)", "name": "lifecycle", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Matching accounts", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "400": {"description": "Unknown lifecycle", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Create account",
                "parameters": [
                    {"description": "Account details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.Input"}}
                ],
                "responses": {
                    "201": {"description": "Created account", "schema": {"$ref": "#/definitions/dto.AccountDTO"}},
                    "400": {"description": "Invalid request or validation error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/accounts/statistics": {
            "get": {
                "description": "Count every stored account by computed lifecycle. Filters do not apply.",
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Account statistics",
                "responses": {
                    "200": {"description": "Lifecycle counts", "schema": {"$ref": "#/definitions/dto.StatisticsDTO"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/accounts/options": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Picker options",
                "responses": {
                    "200": {"description": "Suggested values", "schema": {"$ref": "#/definitions/dto.OptionsDTO"}}
                }
            }
        },
        "/accounts/export/{format}": {
            "get": {
                "description": "Download the whole collection as streaming_accounts.{json,yaml,csv}. Filters do not apply.",
                "produces": ["application/json", "application/yaml", "text/csv"],
                "tags": ["Transfer"],
                "summary": "Export accounts",
                "parameters": [
                    {"type": "string", "description": "Export format (json, yaml, csv)", "name": "format", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Export document", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/accounts/import": {
            "post": {
                "description": "Accepts {\"accounts\": [...]} or a bare array. Invalid entries are reported by index and skipped.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transfer"],
                "summary": "Import accounts",
                "parameters": [
                    {"description": "Accounts to import", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ImportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Import summary", "schema": {"$ref": "#/definitions/account.ImportResult"}},
                    "400": {"description": "Malformed import document", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "413": {"description": "Import document too large", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/accounts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Get account by ID",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Account details", "schema": {"$ref": "#/definitions/dto.AccountDTO"}},
                    "400": {"description": "Invalid account ID", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Fields left out are unchanged. An explicit null clears credentials, notes or price.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Update account",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.UpdateInput"}}
                ],
                "responses": {
                    "200": {"description": "Updated account", "schema": {"$ref": "#/definitions/dto.AccountDTO"}},
                    "400": {"description": "Invalid request or validation error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Accounts"],
                "summary": "Delete account",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Account deleted"},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Ping the record store",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Store health",
                "responses": {
                    "200": {"description": "Store reachable", "schema": {"$ref": "#/definitions/dto.HealthDTO"}},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "account.Input": {
            "type": "object",
            "required": ["accountType", "clientName", "deliveryDate", "expirationDate", "platform"],
            "properties": {
                "accountType": {"type": "string"},
                "clientName": {"type": "string"},
                "credentials": {"type": "object"},
                "deliveryDate": {"type": "string", "example": "2024-03-01"},
                "expirationDate": {"type": "string", "example": "2024-04-01"},
                "notes": {"type": "string"},
                "platform": {"type": "string"},
                "price": {"type": "string", "example": "12.5"},
                "status": {"type": "string"}
            }
        },
        "account.UpdateInput": {
            "type": "object",
            "properties": {
                "accountType": {"type": "string"},
                "clientName": {"type": "string"},
                "credentials": {"type": "object"},
                "deliveryDate": {"type": "string"},
                "expirationDate": {"type": "string"},
                "notes": {"type": "string"},
                "platform": {"type": "string"},
                "price": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "account.ImportResult": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "object"}},
                "failed": {"type": "integer"},
                "imported": {"type": "integer"}
            }
        },
        "dto.AccountDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "clientName": {"type": "string"},
                "platform": {"type": "string"},
                "accountType": {"type": "string"},
                "deliveryDate": {"type": "string", "example": "2024-03-01"},
                "expirationDate": {"type": "string", "example": "2024-04-01"},
                "credentials": {"type": "object"},
                "notes": {"type": "string"},
                "price": {"type": "string", "example": "12.5"},
                "status": {"type": "string"},
                "lifecycle": {"type": "string", "enum": ["active", "expiring", "expired"]},
                "daysRemaining": {"type": "integer"},
                "remaining": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.HealthDTO": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "sqlite"},
                "status": {"type": "string", "example": "connected"}
            }
        },
        "dto.ImportRequest": {
            "type": "object",
            "properties": {
                "accounts": {"type": "array", "items": {"$ref": "#/definitions/account.Input"}}
            }
        },
        "dto.OptionsDTO": {
            "type": "object",
            "properties": {
                "accountTypes": {"type": "array", "items": {"type": "string"}},
                "lifecycles": {"type": "array", "items": {"type": "string"}},
                "platforms": {"type": "array", "items": {"type": "string"}},
                "statuses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.StatisticsDTO": {
            "type": "object",
            "properties": {
                "active": {"type": "integer"},
                "expired": {"type": "integer"},
                "expiring": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "utils.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/utils.ErrorDetail"},
                "success": {"type": "boolean"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "StreamVault API",
	Description:      "Record console for streaming-service accounts handed out to clients.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
