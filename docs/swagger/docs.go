// Package swagger holds the OpenAPI specification served at /swagger.
package swagger

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
        "/command": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dispatch"],
                "summary": "Dispatch Command",
                "description": "Runs one named operation: the multipart-upload lifecycle commands, updateField, or relink. JSON body per command.",
                "parameters": [
                    {
                        "type": "string",
                        "name": "command",
                        "in": "query",
                        "required": true,
                        "description": "Command name"
                    }
                ],
                "responses": {
                    "200": {"description": "Command result"},
                    "400": {"description": "Unknown command or invalid body"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/uploads": {
            "get": {
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "List Multipart Uploads",
                "responses": {
                    "200": {"description": "In-progress uploads"},
                    "500": {"description": "Internal Server Error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Create Multipart Upload",
                "responses": {
                    "200": {"description": "Upload session"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/uploads/complete": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Complete Multipart Upload",
                "responses": {
                    "200": {"description": "Final object"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/uploads/abort": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Abort Multipart Upload",
                "responses": {
                    "200": {"description": "Abort confirmation"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/uploads/sign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Sign Upload Part",
                "responses": {
                    "200": {"description": "Presigned URL"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/objects": {
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["uploads"],
                "summary": "Delete Object",
                "responses": {
                    "200": {"description": "Delete confirmation"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/fields": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fields"],
                "summary": "Update Field",
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/fields/relink": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fields"],
                "summary": "Relink Field",
                "responses": {
                    "200": {"description": "Resulting keys"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/fields/{fieldKey}/posts/{postID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["fields"],
                "summary": "Get Linked Items",
                "parameters": [
                    {
                        "type": "string",
                        "name": "fieldKey",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "postID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "name": "verify",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Linked items"},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Medialink API",
	Description:      "API for linked-media fields and multipart upload proxying.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
