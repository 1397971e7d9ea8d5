// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package docs holds the OpenAPI document served at /swagger/. Regenerate it
// with go generate ./cmd/server after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/alignak-watch/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/actions/acknowledge": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Actions"
                ],
                "summary": "Acknowledge a problem",
                "parameters": [
                    {
                        "description": "Acknowledgement",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/actions.AckRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.PendingAction"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "502": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/actions/check": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Actions"
                ],
                "summary": "Force a check",
                "parameters": [
                    {
                        "description": "Check",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/actions.CheckRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.PendingAction"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "502": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/actions/downtime": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Actions"
                ],
                "summary": "Schedule a downtime",
                "parameters": [
                    {
                        "description": "Downtime",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/actions.DowntimeRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.PendingAction"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "502": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/actions/pending": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Actions"
                ],
                "summary": "Pending actions",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.PendingAction"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/daemons": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "Daemon status",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/diff": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "Last synthesis diff",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.DiffView"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Backend connectivity, pending action count and the last poll of every resource type",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Service health",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/hosts/{id}/history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "Host history",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Host id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Item"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/items/{resource}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "List snapshot items",
                "parameters": [
                    {
                        "enum": [
                            "host",
                            "service",
                            "alignakdaemon",
                            "livesynthesis",
                            "user",
                            "history",
                            "notifications",
                            "realm",
                            "timeperiod"
                        ],
                        "type": "string",
                        "description": "Resource type",
                        "name": "resource",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Items to skip",
                        "name": "offset",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Maximum items, 0 for all",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Item"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/items/{resource}/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "Get one snapshot item",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Resource type",
                        "name": "resource",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Backend item id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.Item"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            },
            "patch": {
                "description": "Sends a PATCH guarded by the snapshot etag, then re-reads the item",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Writes"
                ],
                "summary": "Update an item",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Resource type",
                        "name": "resource",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Backend item id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.PatchRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.PatchResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "409": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "502": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/notifications": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "User notifications",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.Item"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/problems": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "Unhandled problems",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/refresh": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Writes"
                ],
                "summary": "Refresh every resource type",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "502": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/synthesis": {
            "get": {
                "description": "Aggregated host and service counters with percentages",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Snapshot"
                ],
                "summary": "Live synthesis",
                "responses": {
                    "200": {
                        "description": "",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/api.SynthesisView"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a WebSocket. The first message is a snapshot; bus events follow.",
                "tags": [
                    "Realtime"
                ],
                "summary": "Live event stream",
                "responses": {
                    "101": {
                        "description": "Switching Protocols",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "actions.AckRequest": {
            "type": "object",
            "required": [
                "comment",
                "host_id"
            ],
            "properties": {
                "comment": {
                    "type": "string",
                    "maxLength": 1024
                },
                "host_id": {
                    "type": "string"
                },
                "notify": {
                    "type": "boolean"
                },
                "persistent": {
                    "type": "boolean"
                },
                "service_id": {
                    "type": "string"
                },
                "sticky": {
                    "type": "boolean"
                }
            }
        },
        "actions.CheckRequest": {
            "type": "object",
            "required": [
                "host_id"
            ],
            "properties": {
                "comment": {
                    "type": "string",
                    "maxLength": 1024
                },
                "host_id": {
                    "type": "string"
                },
                "service_id": {
                    "type": "string"
                }
            }
        },
        "actions.DowntimeRequest": {
            "type": "object",
            "required": [
                "comment",
                "host_id"
            ],
            "properties": {
                "comment": {
                    "type": "string",
                    "maxLength": 1024
                },
                "duration": {
                    "type": "integer",
                    "minimum": 0
                },
                "end_time": {
                    "type": "integer",
                    "minimum": 0
                },
                "fixed": {
                    "type": "boolean"
                },
                "host_id": {
                    "type": "string"
                },
                "service_id": {
                    "type": "string"
                },
                "start_time": {
                    "type": "integer",
                    "minimum": 0
                }
            }
        },
        "api.DiffView": {
            "type": "object",
            "properties": {
                "counts": {
                    "$ref": "#/definitions/models.SynthesisCount"
                },
                "diff": {
                    "$ref": "#/definitions/models.DiffRecord"
                }
            }
        },
        "api.HealthStatus": {
            "type": "object",
            "properties": {
                "connected": {
                    "type": "boolean"
                },
                "last_polls": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "pending_actions": {
                    "type": "integer"
                },
                "status": {
                    "description": "Status is \"healthy\" when the backend is connected, else \"degraded\".",
                    "type": "string"
                },
                "tasks": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/sync.TaskStatus"
                    }
                },
                "uptime_seconds": {
                    "type": "number"
                }
            }
        },
        "api.PatchRequest": {
            "type": "object",
            "required": [
                "fields"
            ],
            "properties": {
                "fields": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "api.PatchResult": {
            "type": "object",
            "properties": {
                "item": {
                    "$ref": "#/definitions/models.Item"
                },
                "refreshed": {
                    "type": "boolean"
                }
            }
        },
        "api.SynthesisView": {
            "type": "object",
            "properties": {
                "counts": {
                    "$ref": "#/definitions/models.SynthesisCount"
                },
                "percentages": {
                    "$ref": "#/definitions/models.SynthesisPercentages"
                }
            }
        },
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/models.APIError"
                },
                "metadata": {
                    "$ref": "#/definitions/models.Metadata"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "models.DiffRecord": {
            "type": "object",
            "properties": {
                "changed": {
                    "description": "Changed is false when every delta is zero, and always false for the\nfirst computation after startup.",
                    "type": "boolean"
                },
                "computed_at": {
                    "type": "string"
                },
                "first": {
                    "description": "First marks the first computation after startup.",
                    "type": "boolean"
                },
                "hosts": {
                    "$ref": "#/definitions/models.HostCounts"
                },
                "services": {
                    "$ref": "#/definitions/models.ServiceCounts"
                }
            }
        },
        "models.HostCounts": {
            "type": "object",
            "properties": {
                "acknowledged": {
                    "type": "integer"
                },
                "down": {
                    "type": "integer"
                },
                "downtimed": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "unreachable": {
                    "type": "integer"
                },
                "up": {
                    "type": "integer"
                }
            }
        },
        "models.Item": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "additionalProperties": true
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "generation": {
                    "type": "integer"
                },
                "timestamp": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.PendingAction": {
            "type": "object",
            "properties": {
                "handle": {
                    "description": "Handle is the _links.self.href of the backend action request.",
                    "type": "string"
                },
                "host_id": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "kind": {
                    "type": "string",
                    "enum": [
                        "acknowledge",
                        "downtime",
                        "process"
                    ]
                },
                "name": {
                    "type": "string"
                },
                "service_id": {
                    "type": "string"
                },
                "submitted_at": {
                    "type": "string"
                }
            }
        },
        "models.ServiceCounts": {
            "type": "object",
            "properties": {
                "acknowledged": {
                    "type": "integer"
                },
                "critical": {
                    "type": "integer"
                },
                "downtimed": {
                    "type": "integer"
                },
                "ok": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "unknown": {
                    "type": "integer"
                },
                "unreachable": {
                    "type": "integer"
                },
                "warning": {
                    "type": "integer"
                }
            }
        },
        "models.SynthesisCount": {
            "type": "object",
            "properties": {
                "hosts": {
                    "$ref": "#/definitions/models.HostCounts"
                },
                "services": {
                    "$ref": "#/definitions/models.ServiceCounts"
                }
            }
        },
        "models.SynthesisPercentages": {
            "type": "object",
            "properties": {
                "hosts": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                },
                "services": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "number"
                    }
                }
            }
        },
        "sync.TaskStatus": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "integer"
                },
                "last_attempt": {
                    "type": "string"
                },
                "last_duration": {
                    "type": "integer"
                },
                "last_error": {
                    "type": "string"
                },
                "last_success": {
                    "type": "string"
                }
            }
        }
    },
    "tags": [
        {
            "description": "Health and service status",
            "name": "Core"
        },
        {
            "description": "Reads served from the in-memory backend snapshot",
            "name": "Snapshot"
        },
        {
            "description": "Item updates and manual refresh",
            "name": "Writes"
        },
        {
            "description": "Acknowledgements, downtimes and forced checks tracked until the backend confirms them",
            "name": "Actions"
        },
        {
            "description": "WebSocket push of snapshots and bus events",
            "name": "Realtime"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Alignak Watch API",
	Description:      "Live snapshot of an Alignak monitoring backend: synthesis, problems, daemons,\nitems and user actions awaiting confirmation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
