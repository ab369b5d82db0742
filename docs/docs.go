// Package docs registra el documento OpenAPI que sirve /swagger.
// Se regenera con `swag init -g cmd/api/main.go` a partir de las anotaciones de los handlers.
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
        "/dogs": {
            "get": {
                "description": "Perros disponibles para adopción, más nuevos primero, con su foto de portada.",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Catálogo público",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dogs.dogResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/dogs/{dogID}": {
            "get": {
                "description": "Ficha con galería ordenada. Un perro adoptado responde 404.",
                "produces": ["application/json"],
                "tags": ["dogs"],
                "summary": "Perfil público de un perro",
                "parameters": [{"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dogs.dogDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/send-adoption-info": {
            "post": {
                "description": "Valida el pedido y lo registra o envía el email con la info del refugio. En modo email la respuesta 200 es el payload del proveedor tal cual.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adoption"],
                "summary": "Pedir información de adopción",
                "parameters": [{"description": "Datos de contacto", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/adoption.Request"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adoption.successResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/shelter": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoption"],
                "summary": "Info de contacto del refugio",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/adoption.Shelter"}}}
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sesión actual",
                "parameters": [{"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.meResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/dogs": {
            "get": {
                "description": "Todos los perros (disponibles y adoptados), más nuevos primero. Requiere rol admin.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Listado de admin",
                "parameters": [{"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dogs.dogResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "description": "Acepta JSON, o multipart/form-data con los mismos campos más archivos images. Si alguna foto falla no queda nada creado. Requiere rol admin.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Crear perro",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"description": "Datos del perro", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dogs.dogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dogs.dogDetailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/dogs/{dogID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Ficha de admin",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dogs.dogDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "patch": {
                "description": "PATCH parcial; los campos omitidos no se tocan.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Actualizar perro",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true},
                    {"description": "Campos a cambiar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dogs.updateDogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dogs.dogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Borrar perro",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/dogs/{dogID}/images": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Agregar fotos",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "ID del perro", "name": "dogID", "in": "path", "required": true},
                    {"type": "file", "description": "Fotos", "name": "images", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/dogs.imageResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/images/{imageID}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Quitar foto",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"},
                    {"type": "string", "description": "ID de la foto", "name": "imageID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Resumen del catálogo",
                "parameters": [{"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dogs.Stats"}}}
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "adoption.Request": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string", "maxLength": 255},
                "shelterAddress": {"type": "string"}
            }
        },
        "adoption.successResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "adoption.Shelter": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "maps_url": {"type": "string"}
            }
        },
        "router.meResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "is_admin": {"type": "boolean"}
            }
        },
        "dogs.Stats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "available": {"type": "integer"},
                "adopted": {"type": "integer"},
                "recent": {"type": "integer"}
            }
        },
        "dogs.imageResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "dog_id": {"type": "string"},
                "image_url": {"type": "string"},
                "display_order": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "dogs.dogRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "string"},
                "size": {"type": "string"},
                "gender": {"type": "string", "enum": ["Macho", "Hembra"]},
                "story": {"type": "string"},
                "personality": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["available", "adopted"]}
            }
        },
        "dogs.updateDogRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "string"},
                "size": {"type": "string"},
                "gender": {"type": "string", "enum": ["Macho", "Hembra"]},
                "story": {"type": "string"},
                "personality": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["available", "adopted"]}
            }
        },
        "dogs.dogResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "string"},
                "size": {"type": "string"},
                "gender": {"type": "string"},
                "story": {"type": "string"},
                "personality": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "primary_image_url": {"type": "string"}
            }
        },
        "dogs.dogDetailResponse": {
            "type": "object",
            "allOf": [{"$ref": "#/definitions/dogs.dogResponse"}],
            "properties": {
                "images": {"type": "array", "items": {"$ref": "#/definitions/dogs.imageResponse"}}
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
	Title:            "Refugio Adopciones API",
	Description:      "Catálogo de perros en adopción del refugio, panel de admin y pedidos de información.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
