// Package docs registers the storefront OpenAPI document with swag so that
// echo-swagger can serve it under /swagger/.
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
        "/api/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/api/session/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Login",
                "parameters": [{"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/api/session/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Register a new account",
                "parameters": [{"description": "Registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/session/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Refresh company status",
                "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.acceptedResponse"}}}
            }
        },
        "/api/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get cart",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cartResponse"}}}
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Clear cart",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add a car to the cart",
                "parameters": [{"description": "Vehicle snapshot and rental dates", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.addItemRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.cartLineResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/cart/items/{lineId}": {
            "delete": {
                "tags": ["cart"],
                "summary": "Remove a cart line",
                "parameters": [{"type": "string", "description": "Cart line id", "name": "lineId", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/cart/checkout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Checkout",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.checkoutResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["views"],
                "summary": "Render a view descriptor",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.viewResponse"}}}
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "handler.acceptedResponse": {"type": "object", "properties": {"status": {"type": "string"}}},
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "redirect": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password", "role"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["CUSTOMER", "COMPANY", "MEMBER"]}
            }
        },
        "handler.identity": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "id": {"type": "string"},
                "companyId": {"type": "string"},
                "isCompanyActive": {"type": "boolean"}
            }
        },
        "handler.shell": {
            "type": "object",
            "properties": {
                "brand": {"type": "string"},
                "role": {"type": "string"},
                "companyActive": {"type": "boolean"},
                "links": {"type": "array", "items": {"type": "object", "properties": {"label": {"type": "string"}, "path": {"type": "string"}}}}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "restored": {"type": "boolean"},
                "identity": {"$ref": "#/definitions/handler.identity"},
                "shell": {"$ref": "#/definitions/handler.shell"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "identity": {"$ref": "#/definitions/handler.identity"},
                "redirect": {"type": "string"},
                "shell": {"$ref": "#/definitions/handler.shell"}
            }
        },
        "handler.vehicleRequest": {
            "type": "object",
            "required": ["brand", "id", "model"],
            "properties": {
                "id": {"type": "integer"},
                "brand": {"type": "string"},
                "model": {"type": "string"},
                "pricePerDay": {"type": "number"},
                "companyId": {"type": "integer"},
                "companyName": {"type": "string"},
                "ownerId": {"type": "integer"},
                "imageUrl": {"type": "string"}
            }
        },
        "handler.addItemRequest": {
            "type": "object",
            "required": ["endDate", "startDate", "vehicle"],
            "properties": {
                "vehicle": {"$ref": "#/definitions/handler.vehicleRequest"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"}
            }
        },
        "handler.cartLineResponse": {
            "type": "object",
            "properties": {
                "cartLineId": {"type": "string"},
                "id": {"type": "integer"},
                "brand": {"type": "string"},
                "model": {"type": "string"},
                "pricePerDay": {"type": "number"},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "billedDays": {"type": "integer"},
                "subtotal": {"type": "number"}
            }
        },
        "handler.cartResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.cartLineResponse"}},
                "total": {"type": "number"},
                "count": {"type": "integer"}
            }
        },
        "handler.checkoutResponse": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"type": "object", "properties": {"orderId": {"type": "integer"}, "totalAmount": {"type": "number"}, "status": {"type": "string"}}}},
                "cart": {"$ref": "#/definitions/handler.cartResponse"}
            }
        },
        "handler.viewResponse": {
            "type": "object",
            "properties": {
                "view": {"type": "string"},
                "params": {"type": "object", "additionalProperties": {"type": "string"}},
                "shell": {"$ref": "#/definitions/handler.shell"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "CarGoRent Storefront API",
	Description:      "Session, cart and route guard service in front of the CarGoRent backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
