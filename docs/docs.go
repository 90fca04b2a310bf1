// Package docs registers the OpenAPI description of the /api/v1 routes with
// swag so gin-swagger can serve it under /swagger. It is maintained by hand
// alongside internal/interfaces/http/router/routes.go.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "TenantHeader": {"type": "apiKey", "name": "X-Tenant-ID", "in": "header"}
    },
    "security": [{"BearerAuth": []}, {"TenantHeader": []}],
    "paths": {
        "/system/info": {
            "get": {"tags": ["system"], "summary": "Service name and version", "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/partners": {
            "post": {"tags": ["partners"], "summary": "Register a business entity",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEntityRequest"}}],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}},
            "get": {"tags": ["partners"], "summary": "List business entities, newest registration per name and type",
                "parameters": [
                    {"in": "query", "name": "entity_type", "type": "string", "enum": ["customer", "supplier", "wholesaler", "transport", "labour", "other"]},
                    {"in": "query", "name": "search", "type": "string"}
                ],
                "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/partners/{id}": {
            "get": {"tags": ["partners"], "summary": "Get a business entity", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["partners"], "summary": "Update a business entity",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEntityRequest"}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/products": {
            "post": {"tags": ["products"], "summary": "Create a product", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}},
            "get": {"tags": ["products"], "summary": "List products", "parameters": [{"in": "query", "name": "search", "type": "string"}],
                "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/products/{id}/adjust": {
            "post": {"tags": ["products"], "summary": "Adjust stock; reductions never take stock below zero",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "required": ["quantity", "reason"], "properties": {"quantity": {"type": "string", "description": "signed change"}, "reason": {"type": "string"}}}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/invoices": {
            "post": {"tags": ["invoices"], "summary": "Create an invoice, move stock and record GST in one transaction",
                "parameters": [
                    {"in": "header", "name": "Idempotency-Key", "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInvoiceRequest"}}
                ],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}, "409": {"$ref": "#/responses/Error"}}},
            "get": {"tags": ["invoices"], "summary": "List invoices",
                "parameters": [
                    {"in": "query", "name": "invoice_type", "type": "string"},
                    {"in": "query", "name": "entity_type", "type": "string"},
                    {"in": "query", "name": "payment_status", "type": "string"},
                    {"in": "query", "name": "from", "type": "string", "format": "date"},
                    {"in": "query", "name": "to", "type": "string", "format": "date"},
                    {"in": "query", "name": "search", "type": "string"},
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "page_size", "type": "integer"}
                ],
                "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/invoices/preview": {
            "post": {"tags": ["invoices"], "summary": "Compute totals and GST split without saving",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInvoiceRequest"}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/invoices/mark-overdue": {
            "post": {"tags": ["invoices"], "summary": "Flag unpaid invoices past their due date",
                "parameters": [{"in": "body", "name": "body", "schema": {"type": "object", "properties": {"as_of": {"type": "string", "format": "date"}}}}],
                "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/invoices/{id}": {
            "get": {"tags": ["invoices"], "summary": "Get an invoice with items and payments", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/invoices/{id}/payments": {
            "get": {"tags": ["invoices"], "summary": "List payments of an invoice", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"$ref": "#/responses/OK"}}},
            "post": {"tags": ["invoices"], "summary": "Record a payment",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "409": {"$ref": "#/responses/Error"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/invoices/{id}/payment-status": {
            "put": {"tags": ["invoices"], "summary": "Override the payment status; a paid invoice never moves back",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"payment_status": {"type": "string", "enum": ["due", "partial", "paid", "overdue"]}}}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/purchase-orders": {
            "post": {"tags": ["purchase-orders"], "summary": "Create a purchase order", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}},
            "get": {"tags": ["purchase-orders"], "summary": "List purchase orders", "parameters": [{"in": "query", "name": "status", "type": "string"}],
                "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/purchase-orders/{id}": {
            "get": {"tags": ["purchase-orders"], "summary": "Get a purchase order", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/purchase-orders/{id}/send": {
            "post": {"tags": ["purchase-orders"], "summary": "Mark a draft order as sent", "parameters": [{"$ref": "#/parameters/ID"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/purchase-orders/{id}/receive": {
            "post": {"tags": ["purchase-orders"], "summary": "Record cumulative received quantities and add the new deltas to stock",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"items": {"type": "array", "items": {"type": "object", "properties": {"item_id": {"type": "string", "format": "uuid"}, "received_quantity": {"type": "string"}}}}}}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/purchase-orders/{id}/cancel": {
            "post": {"tags": ["purchase-orders"], "summary": "Cancel an open purchase order",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "schema": {"type": "object", "properties": {"reason": {"type": "string"}}}}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "422": {"$ref": "#/responses/Error"}}}
        },
        "/journal": {
            "post": {"tags": ["ledgers"], "summary": "Debit one ledger and credit another",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"debit_ledger_id": {"type": "string", "format": "uuid"}, "credit_ledger_id": {"type": "string", "format": "uuid"}, "amount": {"type": "string"}, "entry_date": {"type": "string", "format": "date"}, "narration": {"type": "string"}, "reference": {"type": "string"}}}}],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/trial-balance": {
            "get": {"tags": ["ledgers"], "summary": "Trial balance; an unbalanced result reports its difference",
                "parameters": [{"$ref": "#/parameters/From"}, {"$ref": "#/parameters/To"}],
                "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/ledgers": {
            "post": {"tags": ["ledgers"], "summary": "Open a ledger", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"name": {"type": "string"}, "ledger_type": {"type": "string"}, "opening_balance": {"type": "string"}, "description": {"type": "string"}}}}],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}},
            "get": {"tags": ["ledgers"], "summary": "List ledgers with balances", "responses": {"200": {"$ref": "#/responses/OK"}}}
        },
        "/ledgers/{id}/summary": {
            "get": {"tags": ["ledgers"], "summary": "Opening, movement and closing balance for a period",
                "parameters": [{"$ref": "#/parameters/ID"}, {"$ref": "#/parameters/From"}, {"$ref": "#/parameters/To"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/ledgers/{id}/entries": {
            "post": {"tags": ["ledgers"], "summary": "Post a debit or a credit",
                "parameters": [{"$ref": "#/parameters/ID"}, {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"debit": {"type": "string"}, "credit": {"type": "string"}, "entry_date": {"type": "string", "format": "date"}, "narration": {"type": "string"}, "reference": {"type": "string"}}}}],
                "responses": {"201": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/reports/{type}": {
            "get": {"tags": ["reports"], "summary": "Build a report; failed sources degrade to warnings",
                "parameters": [{"$ref": "#/parameters/ReportType"}, {"$ref": "#/parameters/From"}, {"$ref": "#/parameters/To"}, {"in": "query", "name": "as_of", "type": "string", "format": "date"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "400": {"$ref": "#/responses/Error"}}}
        },
        "/reports/{type}/latest": {
            "get": {"tags": ["reports"], "summary": "Last complete report of this type", "parameters": [{"$ref": "#/parameters/ReportType"}],
                "responses": {"200": {"$ref": "#/responses/OK"}, "404": {"$ref": "#/responses/Error"}}}
        }
    },
    "parameters": {
        "ID": {"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"},
        "From": {"in": "query", "name": "from", "type": "string", "format": "date"},
        "To": {"in": "query", "name": "to", "type": "string", "format": "date"},
        "ReportType": {"in": "path", "name": "type", "required": true, "type": "string",
            "enum": ["profit_loss", "trial_balance", "gst", "aging", "returns", "sales", "purchases"]}
    },
    "responses": {
        "OK": {"description": "Success envelope", "schema": {"$ref": "#/definitions/Response"}},
        "Error": {"description": "Error envelope", "schema": {"$ref": "#/definitions/Response"}}
    },
    "definitions": {
        "Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/ErrorInfo"},
                "meta": {"type": "object"}
            }
        },
        "ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "details": {"type": "array", "items": {"type": "object"}}
            }
        },
        "CreateEntityRequest": {
            "type": "object",
            "required": ["name", "entity_type"],
            "properties": {
                "name": {"type": "string"},
                "entity_type": {"type": "string", "enum": ["customer", "supplier", "wholesaler", "transport", "labour", "other"]},
                "state_code": {"type": "string"},
                "gstin": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"}
            }
        },
        "CreateInvoiceRequest": {
            "type": "object",
            "required": ["invoice_type", "entity_type", "items"],
            "properties": {
                "invoice_type": {"type": "string", "enum": ["sales", "purchase", "sale_return", "purchase_return"]},
                "entity_type": {"type": "string", "enum": ["customer", "supplier", "wholesaler", "transport", "labour", "other"]},
                "entity_id": {"type": "string", "format": "uuid"},
                "custom_invoice_number": {"type": "string"},
                "invoice_date": {"type": "string", "format": "date"},
                "due_date": {"type": "string", "format": "date"},
                "force_igst": {"type": "boolean"},
                "notes": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/InvoiceItemInput"}}
            }
        },
        "InvoiceItemInput": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string", "format": "uuid"},
                "description": {"type": "string"},
                "hsn_code": {"type": "string"},
                "quantity": {"type": "string"},
                "unit_price": {"type": "string"},
                "gst_rate": {"type": "string"}
            }
        },
        "RecordPaymentRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {
                "amount": {"type": "string"},
                "payment_date": {"type": "string", "format": "date"},
                "payment_method": {"type": "string"},
                "reference": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds the values substituted into the template
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "GST Ledger API",
	Description:      "Invoices with GST split, stock, purchase order receiving, ledgers and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
