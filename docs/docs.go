// Package docs holds the OpenAPI description of the server. Keep it in step
// with the godoc annotations on the handlers in internal/api.
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
        "/chat": {
            "post": {
                "description": "Computes the assistant's answer to one utterance, taking the user's gender and mood into account.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Reply to a user message",
                "parameters": [
                    {
                        "description": "User message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.ReplyRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ReplyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/v1/widget/state": {
            "get": {
                "description": "Returns messages, open and typing flags, profile, display config and quick replies.",
                "produces": ["application/json"],
                "tags": ["Widget"],
                "summary": "Get conversation state",
                "parameters": [
                    {"type": "string", "description": "Client id (UUID)", "name": "X-Client-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Snapshot"}}
                }
            }
        },
        "/api/v1/widget/messages": {
            "post": {
                "description": "Appends the message, waits for the assistant's reply and returns the new state.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Widget"],
                "summary": "Send a user message",
                "parameters": [
                    {"type": "string", "description": "Client id (UUID)", "name": "X-Client-ID", "in": "header"},
                    {
                        "description": "Message",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.SendMessageRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/v1/widget/toggle": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Widget"],
                "summary": "Open or close the widget",
                "parameters": [
                    {"type": "string", "description": "Client id (UUID)", "name": "X-Client-ID", "in": "header"},
                    {
                        "description": "Forced state",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/api.ToggleRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.OpenStateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/v1/widget/profile": {
            "patch": {
                "description": "Merges the given fields into the profile. A gender change also changes the assistant persona.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Widget"],
                "summary": "Update the user profile",
                "parameters": [
                    {"type": "string", "description": "Client id (UUID)", "name": "X-Client-ID", "in": "header"},
                    {
                        "description": "Fields to change",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.ProfileUpdateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.UserProfile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/v1/widget/quick-replies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Widget"],
                "summary": "List quick replies",
                "parameters": [
                    {"type": "string", "description": "Client id (UUID)", "name": "X-Client-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.QuickReply"}}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "api.OpenStateResponse": {
            "type": "object",
            "properties": {"isOpen": {"type": "boolean"}}
        },
        "api.SendMessageRequest": {
            "type": "object",
            "properties": {"text": {"type": "string", "maxLength": 4000, "example": "How can I save money?"}}
        },
        "api.ToggleRequest": {
            "type": "object",
            "properties": {"open": {"type": "boolean"}}
        },
        "api.ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "gender": {"type": "string", "example": "female"},
                "name": {"type": "string", "maxLength": 100, "example": "Asha"},
                "mood": {"type": "string", "maxLength": 64, "example": "stressed"},
                "wisdomLevel": {"type": "integer"},
                "xp": {"type": "integer"}
            }
        },
        "service.ReplyRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string", "maxLength": 4000, "example": "How can I save money?"},
                "gender": {"type": "string", "enum": ["male", "female", "neutral"], "example": "female"},
                "mood": {"type": "string", "maxLength": 64, "example": "neutral"}
            }
        },
        "service.ReplyResponse": {
            "type": "object",
            "properties": {
                "response": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "model.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "sender": {"type": "string", "enum": ["user", "assistant"]},
                "timestamp": {"type": "string"},
                "isError": {"type": "boolean"},
                "replyTo": {"type": "string"}
            }
        },
        "model.UserProfile": {
            "type": "object",
            "properties": {
                "gender": {"type": "string", "enum": ["male", "female", "neutral"]},
                "name": {"type": "string"},
                "mood": {"type": "string"},
                "wisdomLevel": {"type": "integer"},
                "xp": {"type": "integer"}
            }
        },
        "model.Theme": {
            "type": "object",
            "properties": {
                "primary": {"type": "string"},
                "secondary": {"type": "string"},
                "background": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "model.DisplayConfig": {
            "type": "object",
            "properties": {
                "isOpen": {"type": "boolean"},
                "assistantName": {"type": "string"},
                "assistantGender": {"type": "string", "enum": ["male", "female", "neutral"]},
                "theme": {"$ref": "#/definitions/model.Theme"}
            }
        },
        "model.QuickReply": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "emoji": {"type": "string"}
            }
        },
        "model.Snapshot": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/model.Message"}},
                "isOpen": {"type": "boolean"},
                "isTyping": {"type": "boolean"},
                "userProfile": {"$ref": "#/definitions/model.UserProfile"},
                "displayConfig": {"$ref": "#/definitions/model.DisplayConfig"},
                "quickReplies": {"type": "array", "items": {"$ref": "#/definitions/model.QuickReply"}}
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
	Title:            "Rukmini Chat API",
	Description:      "Reply endpoint and conversation state for the Rukmini chat widget.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
