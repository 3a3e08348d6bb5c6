package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the CO₂ Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "CO₂ Platform API",
			"description": "CO₂ concentration forecasts with generated climate consequences, climate-action suggestions, and a contact-email endpoint",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "CO₂ Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/1/forecast/{months}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get CO₂ forecast",
					"description": "Retrieve an autoregressive CO₂ projection with five generated climate consequences; both artifacts are cached per horizon",
					"parameters": []map[string]interface{}{
						{
							"name":        "months",
							"in":          "path",
							"description": "Forecast horizon in months (positive integer)",
							"required":    true,
							"schema":      map[string]string{"type": "integer"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"data": map[string]interface{}{
												"type": "object",
												"properties": map[string]interface{}{
													"dates": map[string]interface{}{
														"type":  "array",
														"items": map[string]string{"type": "string", "format": "date"},
													},
													"predictions": map[string]interface{}{
														"type":  "array",
														"items": map[string]string{"type": "number"},
													},
													"last_16_dates": map[string]interface{}{
														"type":  "array",
														"items": map[string]string{"type": "string", "format": "date"},
													},
													"last_16_values": map[string]interface{}{
														"type":  "array",
														"items": map[string]string{"type": "number"},
													},
												},
											},
											"Consequences": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "object",
													"properties": map[string]interface{}{
														"description":  map[string]string{"type": "string"},
														"impact_level": map[string]string{"type": "integer"},
														"icon":         map[string]string{"type": "string"},
													},
												},
											},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{
							"description": "Non-positive horizon",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"error": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/api/1/actions/{n}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get climate actions",
					"description": "Random sample of n entries from the static climate-action catalog; n is clamped to the catalog size",
					"parameters": []map[string]interface{}{
						{
							"name":        "n",
							"in":          "path",
							"description": "Number of actions to sample (default: 5)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "integer", "default": 5},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"actions": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type":        "array",
													"description": "Pair of [catalog key, {action, icon}]",
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
			"/api/email/send": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Send contact email",
					"description": "Deliver a contact-form message through the configured SMTP relay",
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"to":        map[string]string{"type": "string", "format": "email"},
										"subject":   map[string]string{"type": "string"},
										"userEmail": map[string]string{"type": "string", "format": "email"},
										"message":   map[string]string{"type": "string"},
									},
									"required": []string{"to", "subject", "userEmail", "message"},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Email delivered",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"success": map[string]string{"type": "boolean"},
											"message": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{
							"description": "Blank subject/message or invalid address",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"detail": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
						"500": map[string]interface{}{
							"description": "Delivery failure",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"detail": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API and its storage are reachable",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
