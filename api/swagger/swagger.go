package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Badge Portfolio API",
        "description": "Student badge tracking with graduate profile progress and slide deck generation",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Badges", "description": "Badge catalog"},
        {"name": "Users", "description": "Per-user progress and applications"},
        {"name": "Applications", "description": "Badge application lifecycle"},
        {"name": "Evidence", "description": "Evidence submission"},
        {"name": "Slides", "description": "Deck generation and artifacts"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username or email taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user info",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/badges": {
            "get": {
                "tags": ["Badges"],
                "summary": "List active badges",
                "parameters": [
                    {"name": "graduateProfile", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Badges"],
                "summary": "Create a badge",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBadgeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/badges/{id}": {
            "get": {
                "tags": ["Badges"],
                "summary": "Get one badge",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Badges"],
                "summary": "Update a badge",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateBadgeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user info",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/applications": {
            "get": {
                "tags": ["Users"],
                "summary": "List a user's badge applications",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/stats": {
            "get": {
                "tags": ["Users"],
                "summary": "User badge statistics",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/progress": {
            "get": {
                "tags": ["Users"],
                "summary": "Per-profile progress breakdown",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications": {
            "post": {
                "tags": ["Applications"],
                "summary": "Start a badge application",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateApplicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Badge not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/review": {
            "get": {
                "tags": ["Applications"],
                "summary": "Submitted applications awaiting review",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Application detail",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}/status": {
            "patch": {
                "tags": ["Applications"],
                "summary": "Move an application to a new status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateApplicationStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown status", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evidence": {
            "post": {
                "tags": ["Evidence"],
                "summary": "Submit evidence for an application",
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/CreateEvidenceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "415": {"description": "Unsupported file type", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/applications/{id}/evidence": {
            "get": {
                "tags": ["Evidence"],
                "summary": "List evidence for an application",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/evidence/{id}": {
            "delete": {
                "tags": ["Evidence"],
                "summary": "Delete an evidence record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slides/generate": {
            "post": {
                "tags": ["Slides"],
                "summary": "Generate a presentation deck for a badge",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSlidesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Badge not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slides/download/{filename}": {
            "get": {
                "tags": ["Slides"],
                "summary": "Download a generated PPTX deck",
                "produces": ["application/vnd.openxmlformats-officedocument.presentationml.presentation"],
                "parameters": [
                    {"name": "filename", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Artifact stream"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/slides/pdf/{filename}": {
            "get": {
                "tags": ["Slides"],
                "summary": "Download the PDF rendition of a deck",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "filename", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Artifact stream"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/slides/view/{badgeId}": {
            "get": {
                "tags": ["Slides"],
                "summary": "Interactive HTML view of a badge deck",
                "produces": ["text/html"],
                "parameters": [
                    {"name": "badgeId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "HTML page"},
                    "404": {"description": "Badge not found"}
                }
            }
        },
        "/slides/share/{badgeId}": {
            "get": {
                "tags": ["Slides"],
                "summary": "Issue a signed share link for the newest deck of a badge",
                "parameters": [
                    {"name": "badgeId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No generated deck", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/slides/shared/{token}": {
            "get": {
                "tags": ["Slides"],
                "summary": "Download a deck through a share token",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Artifact stream"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password", "first_name", "last_name"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "teacher", "admin"]}
            }
        },
        "CreateBadgeRequest": {
            "type": "object",
            "required": ["name", "description", "graduateProfile", "criteria"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "graduateProfile": {"type": "string", "enum": ["excellence", "innovation", "integrity", "inspiration", "hauora", "relationships"]},
                "criteria": {"type": "string"},
                "level": {"type": "integer"},
                "requiredEvidenceCount": {"type": "integer"}
            }
        },
        "UpdateBadgeRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "graduateProfile": {"type": "string"},
                "criteria": {"type": "string"},
                "level": {"type": "integer"},
                "requiredEvidenceCount": {"type": "integer"},
                "isActive": {"type": "boolean"}
            }
        },
        "CreateApplicationRequest": {
            "type": "object",
            "required": ["userId", "badgeId"],
            "properties": {
                "userId": {"type": "string"},
                "badgeId": {"type": "string"}
            }
        },
        "UpdateApplicationStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["not_started", "in_progress", "submitted", "in_review", "earned", "rejected"]},
                "reviewedBy": {"type": "string"},
                "feedback": {"type": "string"}
            }
        },
        "CreateEvidenceRequest": {
            "type": "object",
            "required": ["applicationId", "evidenceType", "title"],
            "properties": {
                "applicationId": {"type": "string"},
                "evidenceType": {"type": "string", "enum": ["written_reflection", "file_upload", "project_link", "video_submission"]},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "fileUrl": {"type": "string"}
            }
        },
        "GenerateSlidesRequest": {
            "type": "object",
            "required": ["badgeId"],
            "properties": {
                "badgeId": {"type": "string"},
                "badgeName": {"type": "string"},
                "graduateProfile": {"type": "string"},
                "evidence": {"type": "array", "items": {"$ref": "#/definitions/SlideEvidence"}},
                "reflections": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "SlideEvidence": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "source": {"type": "string"},
                "file_url": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
