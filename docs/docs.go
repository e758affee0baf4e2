// Package docs holds the swagger document for the chat assistant API.
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
        "/chats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chats"],
                "summary": "List chats",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ChatsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chats"],
                "summary": "Create a chat",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"},
                    {"description": "First message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateChatRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Chats"],
                "summary": "Delete all chats",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DeleteAllResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/chats/{chatID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chats"],
                "summary": "Get a chat",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"},
                    {"type": "string", "description": "Chat ID", "name": "chatID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ChatResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Chats"],
                "summary": "Delete a chat",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"},
                    {"type": "string", "description": "Chat ID", "name": "chatID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chats"],
                "summary": "Rename a chat",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"},
                    {"type": "string", "description": "Chat ID", "name": "chatID", "in": "path", "required": true},
                    {"description": "New title", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.UpdateTitleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/chats/{chatID}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "List messages",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"},
                    {"type": "string", "description": "Chat ID", "name": "chatID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessagesResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Append a message",
                "parameters": [
                    {"type": "string", "description": "Caller identity", "name": "x-user-id", "in": "header"},
                    {"type": "string", "description": "Chat ID", "name": "chatID", "in": "path", "required": true},
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.AddMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/chat/stream": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["Relay"],
                "summary": "Stream a chat answer",
                "parameters": [
                    {"description": "Generation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.StreamRequest"}}
                ],
                "responses": {
                    "200": {"description": "Event stream", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/chat/email/rewrite": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["Relay"],
                "summary": "Rewrite an email",
                "parameters": [
                    {"description": "Email and tone", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.EmailRewriteRequest"}}
                ],
                "responses": {
                    "200": {"description": "Event stream", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "api.SuccessResponse": {"type": "object", "properties": {"success": {"type": "boolean"}}},
        "api.DeleteAllResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "deleted": {"type": "integer"}}},
        "api.ChatResponse": {"type": "object", "properties": {"chat": {"$ref": "#/definitions/model.Chat"}}},
        "api.ChatsResponse": {"type": "object", "properties": {"chats": {"type": "array", "items": {"$ref": "#/definitions/model.Chat"}}}},
        "api.MessageResponse": {"type": "object", "properties": {"message": {"$ref": "#/definitions/model.Message"}}},
        "api.MessagesResponse": {"type": "object", "properties": {"messages": {"type": "array", "items": {"$ref": "#/definitions/model.Message"}}}},
        "model.Chat": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "title": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.TokenCounts": {
            "type": "object",
            "properties": {
                "prompt_tokens": {"type": "integer"},
                "completion_tokens": {"type": "integer"},
                "total_tokens": {"type": "integer"}
            }
        },
        "model.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "chatId": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "assistant"]},
                "content": {"type": "string"},
                "rag_references": {"type": "array", "items": {"type": "object"}},
                "tokenCounts": {"$ref": "#/definitions/model.TokenCounts"},
                "createdAt": {"type": "string"}
            }
        },
        "service.CreateChatRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {"message": {"type": "string", "example": "Summarize this report"}}
        },
        "service.UpdateTitleRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {"title": {"type": "string", "maxLength": 100, "example": "Quarterly report summary"}}
        },
        "service.AddMessageRequest": {
            "type": "object",
            "required": ["content", "role"],
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant"], "example": "assistant"},
                "content": {"type": "string", "example": "Sure, here is the summary."},
                "references": {"type": "array", "items": {"type": "object"}},
                "token_counts": {"$ref": "#/definitions/model.TokenCounts"}
            }
        },
        "service.StreamRequest": {
            "type": "object",
            "required": ["model", "question"],
            "properties": {
                "question": {"type": "string", "example": "What does the report conclude?"},
                "model": {"type": "string", "example": "llama3"},
                "temperature": {"type": "number", "minimum": 0, "maximum": 2, "example": 0.7},
                "ragEnabled": {"type": "boolean"},
                "file_name": {"type": "string"},
                "keyword": {"type": "string"},
                "cached": {"type": "boolean"},
                "alpha": {"type": "number", "minimum": 0, "maximum": 1, "example": 0.7}
            }
        },
        "service.EmailRewriteRequest": {
            "type": "object",
            "required": ["email", "tone"],
            "properties": {
                "email": {"type": "string", "example": "hey, can u send the file"},
                "tone": {"type": "string", "example": "formal"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Chat Assistant API",
	Description:      "Chat history, title generation and streaming relay for the chat assistant front-end.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
