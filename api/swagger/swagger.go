package swagger

import "github.com/swaggo/swag"

// docTemplate mirrors the godoc annotations on the handlers. Regenerate with
// swag init -g cmd/api-gateway/main.go when routes change.
const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Admin API",
        "description": "Teachers, classrooms, subjects and their assignments for school administration.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Teachers"
        },
        {
            "name": "Teacher Import"
        },
        {
            "name": "Teacher Assignments"
        },
        {
            "name": "Classrooms"
        },
        {
            "name": "Classroom Tutors"
        },
        {
            "name": "Subjects"
        },
        {
            "name": "Course Subjects"
        },
        {
            "name": "Operations"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Liveness probe",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Operations"
                ],
                "summary": "Readiness probe (pings the database)",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Database unreachable"
                    }
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "List teachers",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "description": "Accent-insensitive match on name, id number or email"
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "type": "boolean",
                        "description": "Filter by active status"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size (max 100)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Create teacher",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateTeacherRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "description": "Optionally assigns the new teacher as tutor and to a course subject in the same transaction.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/teachers/search": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Search teachers",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "description": "Search term",
                        "required": true
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size (max 100)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/teachers/export": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Export the teacher roster",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "description": "csv (default) or pdf"
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "type": "boolean",
                        "description": "Only active teachers"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Roster file"
                    },
                    "400": {
                        "description": "Invalid format",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/teachers/import": {
            "post": {
                "tags": [
                    "Teacher Import"
                ],
                "summary": "Import teachers from Excel",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "type": "file",
                        "required": true,
                        "description": "XLSX workbook"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "description": "Rows are validated like a single create; valid rows are inserted and failed rows are reported.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/teachers/import/template": {
            "get": {
                "tags": [
                    "Teacher Import"
                ],
                "summary": "Download the import template",
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "XLSX workbook"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ]
            }
        },
        "/teachers/import/{batchId}": {
            "get": {
                "tags": [
                    "Teacher Import"
                ],
                "summary": "Get an import report",
                "parameters": [
                    {
                        "name": "batchId",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Get teacher",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Partially update teacher",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TeacherPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "description": "Only fields present in the body are considered; fields equal to the stored value are skipped.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Teachers"
                ],
                "summary": "Deactivate teacher",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "description": "Deactivates the teacher together with every active tutorship and subject assignment.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/teachers/{id}/assignments": {
            "get": {
                "tags": [
                    "Teacher Assignments"
                ],
                "summary": "List teacher assignments",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Teacher ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/teacher-assignments": {
            "post": {
                "tags": [
                    "Teacher Assignments"
                ],
                "summary": "Assign a teacher to a course subject",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AssignTeacherRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/teacher-assignments/{id}": {
            "delete": {
                "tags": [
                    "Teacher Assignments"
                ],
                "summary": "Deactivate a teacher assignment",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Assignment ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classrooms": {
            "get": {
                "tags": [
                    "Classrooms"
                ],
                "summary": "List classrooms",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "description": "Accent-insensitive match on name or location"
                    },
                    {
                        "name": "schedule",
                        "in": "query",
                        "type": "string",
                        "description": "MORNING, AFTERNOON or EVENING"
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "type": "boolean",
                        "description": "Filter by active status"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size (max 100)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Classrooms"
                ],
                "summary": "Create classroom",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateClassroomRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classrooms/search": {
            "get": {
                "tags": [
                    "Classrooms"
                ],
                "summary": "Search classrooms",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "description": "Search term",
                        "required": true
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size (max 100)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classrooms/{id}": {
            "get": {
                "tags": [
                    "Classrooms"
                ],
                "summary": "Get classroom",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classroom ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Classrooms"
                ],
                "summary": "Partially update classroom",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classroom ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassroomPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Classrooms"
                ],
                "summary": "Deactivate classroom",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classroom ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classrooms/{id}/tutors": {
            "get": {
                "tags": [
                    "Classroom Tutors"
                ],
                "summary": "List the classroom's tutors",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classroom ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classrooms/{id}/subjects": {
            "get": {
                "tags": [
                    "Course Subjects"
                ],
                "summary": "List the classroom's subjects",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classroom ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classroom-tutors": {
            "post": {
                "tags": [
                    "Classroom Tutors"
                ],
                "summary": "Assign a classroom tutor",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AssignTutorRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "description": "A classroom holds at most one active tutor per academic year.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/classroom-tutors/{id}": {
            "delete": {
                "tags": [
                    "Classroom Tutors"
                ],
                "summary": "Deactivate a classroom tutor",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Classroom tutor ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/subjects": {
            "get": {
                "tags": [
                    "Subjects"
                ],
                "summary": "List subjects",
                "parameters": [
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "description": "Accent-insensitive match on name or code"
                    },
                    {
                        "name": "active",
                        "in": "query",
                        "type": "boolean",
                        "description": "Filter by active status"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size (max 100)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Subjects"
                ],
                "summary": "Create subject",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateSubjectRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/subjects/search": {
            "get": {
                "tags": [
                    "Subjects"
                ],
                "summary": "Search subjects",
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "type": "string",
                        "description": "Search term",
                        "required": true
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Page number"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer",
                        "description": "Page size (max 100)"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/subjects/{id}": {
            "get": {
                "tags": [
                    "Subjects"
                ],
                "summary": "Get subject",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Subject ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Subjects"
                ],
                "summary": "Partially update subject",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Subject ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubjectPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Subjects"
                ],
                "summary": "Deactivate subject",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Subject ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/course-subjects": {
            "post": {
                "tags": [
                    "Course Subjects"
                ],
                "summary": "Add a subject to a classroom",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreateCourseSubjectRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/course-subjects/{id}": {
            "patch": {
                "tags": [
                    "Course Subjects"
                ],
                "summary": "Partially update a course subject",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Course subject ID"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CourseSubjectPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Course Subjects"
                ],
                "summary": "Remove a subject from a classroom",
                "parameters": [
                    {
                        "name": "X-Institution-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Institution scope (falls back to DEFAULT_INSTITUTION_ID)"
                    },
                    {
                        "name": "X-Academic-Year-ID",
                        "in": "header",
                        "type": "integer",
                        "description": "Academic year scope (falls back to DEFAULT_ACADEMIC_YEAR_ID)"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer",
                        "description": "Course subject ID"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    }
                },
                "description": "Refused while the course subject still has active teacher assignments.",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "total_pages": {
                    "type": "integer"
                },
                "has_next_page": {
                    "type": "boolean"
                },
                "has_previous_page": {
                    "type": "boolean"
                }
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {
                    "type": "object"
                },
                "message": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
            }
        },
        "CreateTeacherRequest": {
            "type": "object",
            "properties": {
                "id_number": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "secondary_phone": {
                    "type": "string"
                },
                "tutor_classroom_id": {
                    "type": "integer"
                },
                "course_subject_id": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                }
            },
            "required": [
                "id_number",
                "first_name",
                "last_name",
                "email"
            ]
        },
        "TeacherPatch": {
            "type": "object",
            "properties": {
                "id_number": {
                    "type": "string"
                },
                "first_name": {
                    "type": "string"
                },
                "last_name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "secondary_phone": {
                    "type": "string"
                },
                "active": {
                    "type": "boolean",
                    "description": "Only true is accepted; deactivate with DELETE /teachers/{id}"
                }
            }
        },
        "CreateClassroomRequest": {
            "type": "object",
            "properties": {
                "grade": {
                    "type": "string"
                },
                "parallel": {
                    "type": "string"
                },
                "schedule": {
                    "type": "string"
                },
                "capacity": {
                    "type": "integer"
                },
                "location": {
                    "type": "string"
                }
            },
            "required": [
                "grade",
                "parallel",
                "schedule",
                "capacity"
            ]
        },
        "ClassroomPatch": {
            "type": "object",
            "properties": {
                "grade": {
                    "type": "string"
                },
                "parallel": {
                    "type": "string"
                },
                "schedule": {
                    "type": "string"
                },
                "capacity": {
                    "type": "integer"
                },
                "location": {
                    "type": "string"
                },
                "active": {
                    "type": "boolean"
                }
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "code"
            ]
        },
        "SubjectPatch": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "active": {
                    "type": "boolean"
                }
            }
        },
        "CreateCourseSubjectRequest": {
            "type": "object",
            "properties": {
                "classroom_id": {
                    "type": "integer"
                },
                "subject_id": {
                    "type": "integer"
                },
                "weekly_hours": {
                    "type": "integer"
                }
            },
            "required": [
                "classroom_id",
                "subject_id",
                "weekly_hours"
            ]
        },
        "CourseSubjectPatch": {
            "type": "object",
            "properties": {
                "weekly_hours": {
                    "type": "integer"
                },
                "active": {
                    "type": "boolean"
                }
            }
        },
        "AssignTutorRequest": {
            "type": "object",
            "properties": {
                "classroom_id": {
                    "type": "integer"
                },
                "teacher_id": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "end_date": {
                    "type": "string"
                },
                "notes": {
                    "type": "string"
                }
            },
            "required": [
                "classroom_id",
                "teacher_id",
                "start_date"
            ]
        },
        "AssignTeacherRequest": {
            "type": "object",
            "properties": {
                "teacher_id": {
                    "type": "integer"
                },
                "course_subject_id": {
                    "type": "integer"
                },
                "start_date": {
                    "type": "string"
                },
                "end_date": {
                    "type": "string"
                }
            },
            "required": [
                "teacher_id",
                "course_subject_id",
                "start_date"
            ]
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
