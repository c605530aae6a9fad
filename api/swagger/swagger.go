package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LGU Benefits API",
        "description": "Voucher issuance and release for municipal benefit programs",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Vouchers", "description": "Voucher lifecycle and projections"},
        {"name": "Benefits", "description": "Benefit definitions and staff assignments"}
    ],
    "paths": {
        "/vouchers": {
            "post": {
                "tags": ["Vouchers"],
                "summary": "Issue a voucher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateVoucherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not a provider for the benefit"},
                    "409": {"description": "Benefit inactive or duplicate pending voucher"},
                    "422": {"description": "Eligibility failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/vouchers/{id}/release": {
            "post": {
                "tags": ["Vouchers"],
                "summary": "Release a pending voucher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not a releaser or separation of duties"},
                    "404": {"description": "Voucher not found"},
                    "409": {"description": "Voucher is not pending"}
                }
            }
        },
        "/vouchers/{id}/cancel": {
            "post": {
                "tags": ["Vouchers"],
                "summary": "Cancel a pending voucher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Only the provider or an administrator can cancel"},
                    "409": {"description": "Voucher is not pending"}
                }
            }
        },
        "/vouchers/pending": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "Pending vouchers the caller may release",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/vouchers/issued": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "Vouchers issued by the caller",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/vouchers/released": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "Vouchers released by the caller",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/benefits": {
            "post": {
                "tags": ["Benefits"],
                "summary": "Define a benefit",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBenefitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "403": {"description": "Cannot administer department"}
                }
            }
        },
        "/benefits/{id}": {
            "get": {
                "tags": ["Benefits"],
                "summary": "Get a benefit with its assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Benefit not found"}
                }
            },
            "put": {
                "tags": ["Benefits"],
                "summary": "Replace a benefit's fields and assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateBenefitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/benefits/{id}/deactivate": {
            "post": {
                "tags": ["Benefits"],
                "summary": "Stop issuing vouchers for a benefit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/benefits/{id}/eligibility-check": {
            "post": {
                "tags": ["Vouchers"],
                "summary": "Preview eligibility of a person for a benefit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EligibilityCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/benefits/{id}/vouchers": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "All vouchers of a benefit",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/benefits/{id}/vouchers/pending-release": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "Find the releasable pending voucher for a person",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "personId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No pending voucher found for this person"}
                }
            }
        },
        "/benefits/{id}/vouchers/stats": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "Voucher counts by status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/benefits/{id}/vouchers/export": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "Download a benefit's vouchers as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/people/{id}/vouchers": {
            "get": {
                "tags": ["Vouchers"],
                "summary": "All vouchers of a person",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateVoucherRequest": {
            "type": "object",
            "properties": {
                "benefitId": {"type": "string"},
                "personId": {"type": "string"},
                "notes": {"type": "string"},
                "overrideEligibility": {"type": "boolean"}
            },
            "required": ["benefitId", "personId"]
        },
        "EligibilityCheckRequest": {
            "type": "object",
            "properties": {
                "personId": {"type": "string"}
            },
            "required": ["personId"]
        },
        "Eligibility": {
            "type": "object",
            "properties": {
                "requiredCategories": {"type": "array", "items": {"type": "string"}},
                "categoryMode": {"type": "string", "enum": ["any", "all"]},
                "barangays": {"type": "array", "items": {"type": "string"}},
                "minAge": {"type": "integer"},
                "maxAge": {"type": "integer"},
                "maxMonthlyIncome": {"type": "integer"},
                "gender": {"type": "string"},
                "residencyStatus": {"type": "string", "enum": ["resident", "nonResident"]}
            }
        },
        "CreateBenefitRequest": {
            "type": "object",
            "properties": {
                "departmentId": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "value": {"type": "number"},
                "quantity": {"type": "integer"},
                "eligibility": {"$ref": "#/definitions/Eligibility"},
                "providers": {"type": "array", "items": {"type": "string"}},
                "releasers": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["name"]
        },
        "UpdateBenefitRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "value": {"type": "number"},
                "quantity": {"type": "integer"},
                "isActive": {"type": "boolean"},
                "eligibility": {"$ref": "#/definitions/Eligibility"},
                "providers": {"type": "array", "items": {"type": "string"}},
                "releasers": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["name"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "eligibilityIssues": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
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
