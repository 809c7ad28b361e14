// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the application's API error format for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Comprehensive error translation to human-readable messages
//   - APIError conversion matching the application's error format
//   - Built-in validator support (oneof, latitude, longitude, gte/lte, etc.)
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type interactionRequest struct {
//	    DealID string `json:"deal_id" validate:"required"`
//	    UserID string `json:"user_id" validate:"required"`
//	    Action string `json:"action" validate:"required,oneof=view save share redeem"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req interactionRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// Coordinate validations (redemption locations):
//   - latitude: Valid latitude (-90 to 90)
//   - longitude: Valid longitude (-180 to 180)
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "100" for max=100)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Action must be one of: view save share redeem",
//	    "details": {"field": "Action", "tag": "oneof", "value": "like"}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "DealID: DealID is required; Action: Action must be one of: ...",
//	    "details": {
//	        "fields": [
//	            {"field": "DealID", "tag": "required", "message": "..."},
//	            {"field": "Action", "tag": "oneof", "message": "..."}
//	        ]
//	    }
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "DealID is required"
//	min=1      -> "Limit must be at least 1"
//	gte=0      -> "DiscountPercent must be greater than or equal to 0"
//	lte=100    -> "DiscountPercent must be less than or equal to 100"
//	oneof=a b  -> "Action must be one of: a b"
//	latitude   -> "Lat must be a valid latitude (-90 to 90)"
//	longitude  -> "Lng must be a valid longitude (-180 to 180)"
//
// # Struct Tag Examples
//
// Proposed-deal validation:
//
//	type dealPerformanceRequest struct {
//	    Category        string  `validate:"required"`
//	    DiscountPercent float64 `validate:"gte=0,lte=100"`
//	    MaxRedemptions  int     `validate:"gte=0"`
//	    Price           float64 `validate:"gte=0"`
//	}
//
// Redemption location:
//
//	type Location struct {
//	    Lat float64 `validate:"latitude"`
//	    Lng float64 `validate:"longitude"`
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/api: request structs validated at the handler boundary
//   - github.com/go-playground/validator/v10: Underlying library
package validation
