// Package docs registers the OpenAPI document served by the Swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/customers": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Create a customer",
                "parameters": [
                    {"in": "body", "name": "customer", "required": true, "schema": {"$ref": "#/definitions/CustomerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "summary": "Delete every customer (admin reset, disabled unless ADMIN_RESET_ENABLED)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResetResponse"}},
                    "404": {"description": "Disabled", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/customers/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get a customer by id",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Customer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Overwrite a customer",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "customer", "required": true, "schema": {"$ref": "#/definitions/CustomerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Customer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "summary": "Delete a customer",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Customer": {
            "type": "object",
            "properties": {
                "customer_id": {"type": "integer"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "email": {"type": "string"},
                "total_purchases_amount": {"type": "string", "example": "0"}
            }
        },
        "CustomerRequest": {
            "type": "object",
            "required": ["first_name", "last_name"],
            "properties": {
                "first_name": {"type": "string", "maxLength": 100},
                "last_name": {"type": "string", "maxLength": 100},
                "phone_number": {"type": "string", "maxLength": 32},
                "email": {"type": "string", "maxLength": 254},
                "total_purchases_amount": {"type": "number", "minimum": 0}
            }
        },
        "CreateResponse": {
            "type": "object",
            "properties": {"customer_id": {"type": "integer"}}
        },
        "ResetResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "integer"}}
        },
        "Error": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Customer API",
	Description:      "CRUD access to customers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
