// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/seasons": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "List seasons",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/seasons/active": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "List seasons running now",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/seasons/{seasonId}": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "Get a season with the caller's progress",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/seasons/{seasonId}/rewards": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "List a season's rewards",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/seasons/{seasonId}/progress": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "Get the caller's progression in a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/seasons/{seasonId}/premium": {
			"post": {
				"tags": [
					"Battle Pass"
				],
				"summary": "Buy the premium pass for a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					},
					{
						"description": "PurchasePremiumRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.PurchasePremiumRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/battle-pass/me": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "List the caller's seasons",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/rewards/{rewardId}/eligibility": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "Get the caller's eligibility for a reward",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "rewardId",
						"name": "rewardId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/rewards/{rewardId}/claim": {
			"post": {
				"tags": [
					"Battle Pass"
				],
				"summary": "Claim a reward",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "rewardId",
						"name": "rewardId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/claims": {
			"get": {
				"tags": [
					"Battle Pass"
				],
				"summary": "List the caller's claims, newest first",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/battle-pass/claims/{claimId}/deliver": {
			"post": {
				"tags": [
					"Battle Pass"
				],
				"summary": "Acknowledge delivery of a claimed reward",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "claimId",
						"name": "claimId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/shop/items": {
			"get": {
				"tags": [
					"Shop"
				],
				"summary": "List shop items available for purchase",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/shop/items/{itemId}/purchase": {
			"post": {
				"tags": [
					"Shop"
				],
				"summary": "Buy a shop item with points",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "itemId",
						"name": "itemId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/shop/purchases": {
			"get": {
				"tags": [
					"Shop"
				],
				"summary": "List the caller's purchases, newest first",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/shop/purchases/{purchaseId}/receive": {
			"post": {
				"tags": [
					"Shop"
				],
				"summary": "Mark a purchase as received",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "purchaseId",
						"name": "purchaseId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/points/balance": {
			"get": {
				"tags": [
					"Points"
				],
				"summary": "Get the caller's points balance",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/admin/seasons": {
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Create a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "CreateSeasonRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateSeasonRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/seasons/{seasonId}/rewards": {
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Add a reward to a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					},
					{
						"description": "CreateRewardRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateRewardRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/users/{userId}/seasons/{seasonId}": {
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Enroll a user in a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/admin/users/{userId}/seasons/{seasonId}/level": {
			"put": {
				"tags": [
					"Admin"
				],
				"summary": "Set a user's level in a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					},
					{
						"description": "SetLevelRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetLevelRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/users/{userId}/seasons/{seasonId}/xp": {
			"put": {
				"tags": [
					"Admin"
				],
				"summary": "Overwrite a user's XP in a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					},
					{
						"description": "SetXPRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetXPRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Add XP to a user's progression",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					},
					{
						"description": "AddXPRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.AddXPRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/users/{userId}/seasons/{seasonId}/premium": {
			"put": {
				"tags": [
					"Admin"
				],
				"summary": "Set a user's premium entitlement in a season",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "seasonId",
						"name": "seasonId",
						"in": "path",
						"required": true
					},
					{
						"description": "SetPremiumRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetPremiumRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/users/{userId}/points/credit": {
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Credit points to a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "PointsAmountRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.PointsAmountRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/users/{userId}/points/debit": {
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Debit points from a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "userId",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "PointsAmountRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.PointsAmountRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/shop/items": {
			"get": {
				"tags": [
					"Admin"
				],
				"summary": "List every shop item, available or not",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			},
			"post": {
				"tags": [
					"Admin"
				],
				"summary": "Create a shop item",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"description": "CreateShopItemRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.CreateShopItemRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/shop/items/{itemId}/availability": {
			"put": {
				"tags": [
					"Admin"
				],
				"summary": "Enable or disable a shop item",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "itemId",
						"name": "itemId",
						"in": "path",
						"required": true
					},
					{
						"description": "SetAvailabilityRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetAvailabilityRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/payments": {
			"get": {
				"tags": [
					"Admin"
				],
				"summary": "List premium payments, newest first",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				}
			}
		},
		"/admin/payments/{paymentId}/status": {
			"put": {
				"tags": [
					"Admin"
				],
				"summary": "Override a payment's status",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "paymentId",
						"name": "paymentId",
						"in": "path",
						"required": true
					},
					{
						"description": "SetPaymentStatusRequest",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.SetPaymentStatusRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/admin/action-logs": {
			"get": {
				"tags": [
					"Admin"
				],
				"summary": "List recent action logs",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"default": 100,
						"description": "Maximum entries",
						"name": "limit",
						"in": "query"
					}
				]
			}
		}
	},
	"definitions": {
		"handlers.PurchasePremiumRequest": {
			"type": "object",
			"properties": {
				"method": {
					"type": "string",
					"enum": [
						"card",
						"crypto"
					]
				},
				"currency": {
					"type": "string"
				}
			},
			"required": [
				"method"
			]
		},
		"handlers.CreateSeasonRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"start_date": {
					"type": "string"
				},
				"end_date": {
					"type": "string"
				},
				"is_premium": {
					"type": "boolean"
				},
				"premium_price": {
					"type": "integer"
				}
			},
			"required": [
				"name",
				"start_date",
				"end_date"
			]
		},
		"handlers.CreateRewardRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"kind": {
					"type": "string",
					"enum": [
						"item",
						"bonus",
						"discount"
					]
				},
				"required_level": {
					"type": "integer",
					"minimum": 1
				},
				"is_premium": {
					"type": "boolean"
				}
			},
			"required": [
				"name",
				"kind",
				"required_level"
			]
		},
		"handlers.SetLevelRequest": {
			"type": "object",
			"properties": {
				"level": {
					"type": "integer",
					"minimum": 1
				}
			},
			"required": [
				"level"
			]
		},
		"handlers.SetXPRequest": {
			"type": "object",
			"properties": {
				"xp": {
					"type": "integer",
					"minimum": 0
				}
			},
			"required": [
				"xp"
			]
		},
		"handlers.AddXPRequest": {
			"type": "object",
			"properties": {
				"delta": {
					"type": "integer",
					"minimum": 1
				}
			},
			"required": [
				"delta"
			]
		},
		"handlers.SetPremiumRequest": {
			"type": "object",
			"properties": {
				"is_premium": {
					"type": "boolean"
				}
			},
			"required": [
				"is_premium"
			]
		},
		"handlers.PointsAmountRequest": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "integer"
				}
			}
		},
		"handlers.CreateShopItemRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "integer",
					"minimum": 1
				},
				"is_available": {
					"type": "boolean"
				}
			},
			"required": [
				"name",
				"price"
			]
		},
		"handlers.SetAvailabilityRequest": {
			"type": "object",
			"properties": {
				"is_available": {
					"type": "boolean"
				}
			},
			"required": [
				"is_available"
			]
		},
		"handlers.SetPaymentStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"completed",
						"failed"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"handlers.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string",
					"example": "Error message describing what went wrong"
				}
			}
		}
	},
	"securityDefinitions": {
		"Bearer": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Battle Pass API",
	Description:      "Battle pass progression, reward redemption and points ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
