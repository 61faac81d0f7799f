// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "in": "header", "name": "Cookie"},
        "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
    },
    "security": [{"CookieAuth": []}, {"BearerAuth": []}],
    "paths": {
        "/goals": {
            "get": {
                "tags": ["goals"],
                "summary": "List the caller's goals",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/goal.GoalResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["goals"],
                "summary": "Create a goal",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "goal", "required": true, "schema": {"$ref": "#/definitions/goal.CreateGoalDTO"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/goal.GoalResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/goals/{id}": {
            "get": {
                "tags": ["goals"],
                "summary": "Get a goal",
                "parameters": [{"in": "path", "name": "id", "type": "string", "format": "uuid", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/goal.GoalResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["goals"],
                "summary": "Patch goal metadata",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "patch", "required": true, "schema": {"$ref": "#/definitions/goal.UpdateGoalDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/goal.GoalResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["goals"],
                "summary": "Delete a goal and its ledger",
                "parameters": [{"in": "path", "name": "id", "type": "string", "format": "uuid", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/goals/{id}/complete": {
            "put": {
                "tags": ["goals"],
                "summary": "Mark a goal as completed",
                "parameters": [{"in": "path", "name": "id", "type": "string", "format": "uuid", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/goal.GoalResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/goals/{id}/contributions": {
            "post": {
                "tags": ["goals"],
                "summary": "Post a deposit or withdrawal",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "contribution", "required": true, "schema": {"$ref": "#/definitions/goal.ContributionDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/goal.GoalResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "tags": ["users"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/auth/google/login": {
            "get": {"tags": ["auth"], "summary": "Redirect to Google consent", "security": [], "responses": {"307": {"description": "Temporary Redirect"}}}
        },
        "/auth/google/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "Complete Google sign-in and set session cookies",
                "security": [],
                "parameters": [
                    {"in": "query", "name": "code", "type": "string", "required": true},
                    {"in": "query", "name": "state", "type": "string", "required": true}
                ],
                "responses": {"307": {"description": "Temporary Redirect"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/refresh": {
            "post": {"tags": ["auth"], "summary": "Rotate the refresh token", "security": [], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Revoke the session", "security": [], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}}}
        }
    },
    "definitions": {
        "ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "goal.CreateGoalDTO": {
            "type": "object",
            "required": ["name", "targetValue"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "colour": {"type": "string"},
                "targetValue": {"type": "integer", "minimum": 0}
            }
        },
        "goal.UpdateGoalDTO": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "colour": {"type": "string"},
                "targetValue": {"type": "integer", "minimum": 0},
                "completed": {"type": "boolean"}
            }
        },
        "goal.ContributionDTO": {
            "type": "object",
            "required": ["amount", "type"],
            "properties": {
                "amount": {"type": "integer", "minimum": 1},
                "type": {"type": "string", "enum": ["deposit", "withdrawal"]}
            }
        },
        "goal.ContributionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "amount": {"type": "integer"},
                "type": {"type": "string", "enum": ["deposit", "withdrawal"]},
                "timestamp": {"type": "string", "format": "date-time"}
            }
        },
        "goal.GoalResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "userId": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "colour": {"type": "string"},
                "targetValue": {"type": "integer"},
                "currentValue": {"type": "integer"},
                "completed": {"type": "boolean"},
                "contributions": {"type": "array", "items": {"$ref": "#/definitions/goal.ContributionResponse"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "user.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "2.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Goal Tracker API",
	Description:      "Savings goals with an append-only contribution ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
