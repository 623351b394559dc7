// Package docs registers the OpenAPI description served under /swagger/.
// The route annotations on the handlers are the source; keep this template
// in sync when they change.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "AdminJWT": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}},
        "/api/register": {"post": {"tags": ["users"], "summary": "Register a new user", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Response"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Response"}}}}},
        "/api/login": {"post": {"tags": ["users"], "summary": "Login", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Response"}}}}},
        "/api/logout": {"post": {"tags": ["users"], "summary": "Logout", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/profile": {
            "get": {"tags": ["users"], "summary": "Get profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["users"], "summary": "Update profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"tags": ["users"], "summary": "Delete profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/products": {"get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}}},
        "/api/products/featured": {"get": {"tags": ["products"], "summary": "Featured products", "parameters": [{"in": "query", "name": "limit", "type": "integer", "default": 5}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/products/search/{query}": {"get": {"tags": ["products"], "summary": "Search products", "parameters": [{"in": "path", "name": "query", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/products/category/{category}": {"get": {"tags": ["products"], "summary": "Products by category", "parameters": [{"in": "path", "name": "category", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/products/{id}": {"get": {"tags": ["products"], "summary": "Get product", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/products/{id}/reviews": {"post": {"tags": ["products"], "summary": "Review product", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}},
        "/api/categories": {"get": {"tags": ["products"], "summary": "List categories", "responses": {"200": {"description": "OK"}}}},
        "/api/admin/users": {"get": {"tags": ["admin"], "summary": "List users", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/admin/products": {
            "get": {"tags": ["admin"], "summary": "List all products", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Create product", "security": [{"AdminJWT": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/productRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/admin/products/{id}": {
            "put": {"tags": ["admin"], "summary": "Update product", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["admin"], "summary": "Delete product", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/admin/products/{id}/stock": {"put": {"tags": ["admin"], "summary": "Set stock", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/admin/products/{id}/stock/add": {"post": {"tags": ["admin"], "summary": "Add stock", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Quantity exceeds the stock limit"}, "404": {"description": "Not Found"}}}},
        "/api/admin/products/{id}/stock/remove": {"post": {"tags": ["admin"], "summary": "Remove stock", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Insufficient stock"}}}},
        "/api/admin/products/{id}/deactivate": {"post": {"tags": ["admin"], "summary": "Deactivate product", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/admin/products/{id}/reactivate": {"post": {"tags": ["admin"], "summary": "Reactivate product", "security": [{"AdminJWT": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "definitions": {
        "Response": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}, "data": {}}},
        "registerRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}}},
        "loginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "productRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"}, "stock": {"type": "integer"}, "category": {"type": "string"}, "image_url": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shop API",
	Description:      "User accounts, sessions and product catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
