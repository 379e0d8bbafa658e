// Package docs registers the PlayVerse OpenAPI document with swag so that
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
        "/login/": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"type": "string", "description": "Email or username", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/registro/": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Birthdate (YYYY-MM-DD)", "name": "fecha_nacimiento", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password1", "in": "formData", "required": true},
                    {"type": "string", "description": "Password confirmation", "name": "password2", "in": "formData", "required": true},
                    {"type": "string", "description": "Address", "name": "direccion", "in": "formData"},
                    {"type": "string", "description": "Phone", "name": "telefono", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/logout/": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/perfil/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            }
        },
        "/password-reset/": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["password-reset"],
                "summary": "Request a password reset",
                "parameters": [
                    {"type": "string", "description": "Account email", "name": "email", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/password-reset/confirm/{token}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["password-reset"],
                "summary": "Open a password reset link",
                "parameters": [
                    {"type": "string", "description": "Reset token", "name": "token", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "302": {"description": "Found"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["password-reset"],
                "summary": "Set a new password",
                "parameters": [
                    {"type": "string", "description": "Reset token", "name": "token", "in": "path", "required": true},
                    {"type": "string", "description": "New password", "name": "new_password1", "in": "formData", "required": true},
                    {"type": "string", "description": "New password confirmation", "name": "new_password2", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/administracion/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Administration dashboard",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            }
        },
        "/juegos/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List games (admin)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            }
        },
        "/juegos/crear/": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create game",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "nombre", "in": "formData", "required": true},
                    {"type": "number", "description": "Price", "name": "precio", "in": "formData", "required": true},
                    {"type": "string", "description": "Category", "name": "categoria", "in": "formData", "required": true},
                    {"type": "integer", "description": "Stock", "name": "stock", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "descripcion", "in": "formData"},
                    {"type": "string", "description": "Image path", "name": "imagen", "in": "formData"},
                    {"type": "string", "description": "Active checkbox", "name": "activo", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/carrito/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "View cart",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            }
        },
        "/carrito/agregar/{game_id}/": {
            "post": {
                "tags": ["cart"],
                "summary": "Add to cart",
                "parameters": [
                    {"type": "string", "description": "Game id", "name": "game_id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/reservas/lista/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reservations"],
                "summary": "List my reservations",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}}}
            }
        },
        "/reservas/crear/": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["reservations"],
                "summary": "Create reservation",
                "parameters": [
                    {"type": "string", "description": "Activity", "name": "actividad", "in": "formData", "required": true},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "fecha", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/{slug}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Game detail",
                "parameters": [
                    {"type": "string", "description": "Game slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Page"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Flash": {
            "type": "object",
            "properties": {
                "level": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "handler.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handler.Page": {
            "type": "object",
            "properties": {
                "page": {"type": "string"},
                "data": {},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/domain.Flash"}}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
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
	Title:            "PlayVerse Store API",
	Description:      "Game catalog, cart, reservations and account pages of the PlayVerse store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
