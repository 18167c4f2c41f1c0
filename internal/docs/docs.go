// Package docs registers the Continuum API description with swag.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/subscriptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "List subscriptions",
                "parameters": [
                    {"type": "string", "description": "Exact category label", "name": "category", "in": "query"},
                    {"type": "string", "description": "Case-insensitive text in name or category", "name": "q", "in": "query"},
                    {"type": "string", "description": "subscription or payment", "name": "kind", "in": "query"},
                    {"type": "string", "description": "past_due or upcoming", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Subscriptions"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Create a subscription",
                "parameters": [
                    {"description": "Subscription details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateSubscriptionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Subscription created"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/subscriptions/watch": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["subscriptions"],
                "summary": "Watch subscriptions",
                "responses": {"200": {"description": "subscriptions events"}}
            }
        },
        "/subscriptions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Get a subscription",
                "parameters": [{"type": "string", "description": "Subscription ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Subscription"},
                    "404": {"description": "Subscription not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Update a subscription",
                "parameters": [
                    {"type": "string", "description": "Subscription ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateSubscriptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Subscription updated"},
                    "404": {"description": "Subscription not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Delete a subscription",
                "parameters": [{"type": "string", "description": "Subscription ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Subscription deleted"},
                    "404": {"description": "Subscription not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/subscriptions/{id}/renew": {
            "post": {
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "Renew a subscription",
                "parameters": [{"type": "string", "description": "Subscription ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Subscription renewed"}}
            }
        },
        "/assets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "List assets",
                "parameters": [
                    {"type": "string", "description": "Exact category label", "name": "category", "in": "query"},
                    {"type": "string", "description": "Case-insensitive text in name or category", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "Assets"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Create an asset",
                "parameters": [
                    {"description": "Asset details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateAssetRequest"}}
                ],
                "responses": {"201": {"description": "Asset created"}}
            }
        },
        "/assets/watch": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["assets"],
                "summary": "Watch assets",
                "responses": {"200": {"description": "assets events"}}
            }
        },
        "/assets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Get an asset",
                "parameters": [{"type": "string", "description": "Asset ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Asset"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Update an asset",
                "parameters": [
                    {"type": "string", "description": "Asset ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateAssetRequest"}}
                ],
                "responses": {"200": {"description": "Asset updated"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Delete an asset",
                "parameters": [{"type": "string", "description": "Asset ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Asset deleted"}}
            }
        },
        "/assets/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Get asset value history",
                "parameters": [{"type": "string", "description": "Asset ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Value changes"}}
            }
        },
        "/warranties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["warranties"],
                "summary": "List warranties",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive text in product name or vendor", "name": "q", "in": "query"},
                    {"type": "string", "description": "expired, expiring or active", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "Warranties"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["warranties"],
                "summary": "Create a warranty",
                "parameters": [
                    {"description": "Warranty details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateWarrantyRequest"}}
                ],
                "responses": {"201": {"description": "Warranty created"}}
            }
        },
        "/warranties/watch": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["warranties"],
                "summary": "Watch warranties",
                "responses": {"200": {"description": "warranties events"}}
            }
        },
        "/warranties/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["warranties"],
                "summary": "Get a warranty",
                "parameters": [{"type": "string", "description": "Warranty ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Warranty"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["warranties"],
                "summary": "Update a warranty",
                "parameters": [
                    {"type": "string", "description": "Warranty ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateWarrantyRequest"}}
                ],
                "responses": {"200": {"description": "Warranty updated"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["warranties"],
                "summary": "Delete a warranty",
                "parameters": [{"type": "string", "description": "Warranty ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Warranty deleted"}}
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json", "text/markdown"],
                "tags": ["dashboard"],
                "summary": "Get the dashboard",
                "parameters": [{"type": "string", "description": "json (default) or markdown", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "Dashboard"}}
            }
        },
        "/calendar": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "List calendar events",
                "parameters": [
                    {"type": "string", "description": "First day, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "Day after the last day, YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "Events"}}
            }
        },
        "/calendar/day": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Get one calendar day",
                "parameters": [{"type": "string", "description": "Day, YYYY-MM-DD (default today)", "name": "date", "in": "query"}],
                "responses": {"200": {"description": "Day"}}
            }
        },
        "/backup/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["backup"],
                "summary": "Export a backup",
                "responses": {"200": {"description": "Snapshot file"}}
            }
        },
        "/backup/import": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["backup"],
                "summary": "Import a backup",
                "responses": {
                    "200": {"description": "Backup restored"},
                    "400": {"description": "Unreadable or unsupported snapshot", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "413": {"description": "Snapshot too large", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "List activity",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated activity"}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handlers.ErrorDetail"}
            }
        },
        "handlers.CreateSubscriptionRequest": {
            "type": "object",
            "required": ["amount", "name"],
            "properties": {
                "amount": {"type": "string", "example": "15.49"},
                "billing_cycle": {"type": "string", "enum": ["Weekly", "Bi-weekly", "Monthly", "Quarterly", "Yearly"]},
                "category": {"type": "string", "enum": ["Streaming", "Software", "Utilities", "Insurance", "Rent", "Loan", "Membership", "Other"]},
                "is_subscription": {"type": "boolean"},
                "name": {"type": "string", "maxLength": 200},
                "next_due_date": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"}
            }
        },
        "handlers.UpdateSubscriptionRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "billing_cycle": {"type": "string"},
                "category": {"type": "string"},
                "is_subscription": {"type": "boolean"},
                "name": {"type": "string", "maxLength": 200},
                "next_due_date": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"}
            }
        },
        "handlers.CreateAssetRequest": {
            "type": "object",
            "required": ["current_value", "name"],
            "properties": {
                "category": {"type": "string", "enum": ["Electronics", "Vehicle", "Property", "Jewelry", "Collectibles", "Furniture", "Other"]},
                "current_value": {"type": "string", "example": "800"},
                "name": {"type": "string", "maxLength": 200},
                "notes": {"type": "string"},
                "purchase_date": {"type": "string", "format": "date-time"}
            }
        },
        "handlers.UpdateAssetRequest": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "clear_purchase_date": {"type": "boolean"},
                "current_value": {"type": "string"},
                "name": {"type": "string", "maxLength": 200},
                "notes": {"type": "string"},
                "purchase_date": {"type": "string", "format": "date-time"},
                "value_note": {"type": "string"}
            }
        },
        "handlers.CreateWarrantyRequest": {
            "type": "object",
            "required": ["product_name"],
            "properties": {
                "expiry_date": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"},
                "product_name": {"type": "string", "maxLength": 200},
                "purchase_date": {"type": "string", "format": "date-time"},
                "vendor": {"type": "string", "maxLength": 200}
            }
        },
        "handlers.UpdateWarrantyRequest": {
            "type": "object",
            "properties": {
                "expiry_date": {"type": "string", "format": "date-time"},
                "notes": {"type": "string"},
                "product_name": {"type": "string", "maxLength": 200},
                "purchase_date": {"type": "string", "format": "date-time"},
                "vendor": {"type": "string", "maxLength": 200}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Continuum API",
	Description:      "Continuum tracks subscriptions, recurring payments, personal assets and warranties on the owner's machine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
