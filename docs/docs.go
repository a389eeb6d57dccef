// Package docs holds the generated Swagger specification.
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
        "/analyses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "List all analyses",
                "responses": {
                    "200": {
                        "description": "List of analyses",
                        "schema": {"type": "array", "items": {"type": "object"}}
                    },
                    "500": {"description": "Internal server error", "schema": {"type": "object"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Create a new analysis",
                "parameters": [
                    {
                        "description": "Analysis configuration",
                        "name": "analysis",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "Analysis created successfully", "schema": {"type": "object"}},
                    "400": {"description": "Invalid request payload", "schema": {"type": "object"}},
                    "500": {"description": "Internal server error", "schema": {"type": "object"}}
                }
            }
        },
        "/analyses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get analysis",
                "parameters": [
                    {"type": "string", "description": "Analysis ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Analysis details", "schema": {"type": "object"}},
                    "404": {"description": "Analysis not found", "schema": {"type": "object"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Delete analysis",
                "parameters": [
                    {"type": "string", "description": "Analysis ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Analysis deleted", "schema": {"type": "object"}},
                    "404": {"description": "Analysis not found", "schema": {"type": "object"}}
                }
            }
        },
        "/analyses/{id}/results": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get analysis results",
                "parameters": [
                    {"type": "string", "description": "Analysis ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Analysis results", "schema": {"type": "object"}},
                    "500": {"description": "Internal server error", "schema": {"type": "object"}}
                }
            }
        },
        "/analyses/{id}/errors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get analysis errors",
                "parameters": [
                    {"type": "string", "description": "Analysis ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Analysis errors", "schema": {"type": "object"}},
                    "500": {"description": "Internal server error", "schema": {"type": "object"}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Insight Engine API",
	Description:      "Tabular analytics service: aggregation, time series, correlations, data quality, and insight generation over schema-agnostic datasets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
