// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package validation

import (
	"strings"
	"sync"
	"testing"
)

// Test fixtures mirror the request structs internal/api validates at the
// handler boundary.

type interactionFixture struct {
	DealID string `validate:"required"`
	UserID string `validate:"required"`
	Action string `validate:"required,oneof=view save share redeem"`
}

type redemptionFixture struct {
	DealID   string  `validate:"required"`
	UserID   string  `validate:"required"`
	VenueID  string  `validate:"required"`
	Lat      float64 `validate:"latitude"`
	Lng      float64 `validate:"longitude"`
	DeviceID string
}

type dealProposalFixture struct {
	Category        string  `validate:"required"`
	DiscountPercent float64 `validate:"gte=0,lte=100"`
	MaxRedemptions  int     `validate:"gte=0"`
	Price           float64 `validate:"gte=0"`
	StartTime       string  `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type queryFixture struct {
	Limit  int    `validate:"min=1,max=50"`
	Window int    `validate:"omitempty,min=1,max=168"`
	Sort   string `validate:"omitempty,oneof=rank trending"`
}

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestGetValidator_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := interactionFixture{DealID: "deal-1", UserID: "user-1", Action: "view"}
			if err := ValidateStruct(&req); err != nil {
				t.Errorf("concurrent ValidateStruct() returned error: %v", err)
			}
		}()
	}
	wg.Wait()
}

// ===================================================================================================
// Interaction Request Tests
// ===================================================================================================

func TestValidateInteraction_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interactionFixture
	}{
		{
			name:  "view action",
			input: interactionFixture{DealID: "deal-1", UserID: "user-1", Action: "view"},
		},
		{
			name:  "save action",
			input: interactionFixture{DealID: "deal-2", UserID: "user-9", Action: "save"},
		},
		{
			name:  "share action",
			input: interactionFixture{DealID: "deal-2", UserID: "user-9", Action: "share"},
		},
		{
			name:  "redeem action",
			input: interactionFixture{DealID: "deal-3", UserID: "user-2", Action: "redeem"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateInteraction_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interactionFixture
		wantField string
		wantTag   string
	}{
		{
			name:      "missing deal id",
			input:     interactionFixture{UserID: "user-1", Action: "view"},
			wantField: "DealID",
			wantTag:   "required",
		},
		{
			name:      "missing user id",
			input:     interactionFixture{DealID: "deal-1", Action: "view"},
			wantField: "UserID",
			wantTag:   "required",
		},
		{
			name:      "missing action",
			input:     interactionFixture{DealID: "deal-1", UserID: "user-1"},
			wantField: "Action",
			wantTag:   "required",
		},
		{
			name:      "unknown action",
			input:     interactionFixture{DealID: "deal-1", UserID: "user-1", Action: "like"},
			wantField: "Action",
			wantTag:   "oneof",
		},
		{
			name:      "action case sensitive",
			input:     interactionFixture{DealID: "deal-1", UserID: "user-1", Action: "View"},
			wantField: "Action",
			wantTag:   "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, err.Errors())
			}
		})
	}
}

// ===================================================================================================
// Redemption Request Tests (coordinates)
// ===================================================================================================

func TestValidateRedemption_Valid(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"origin", 0, 0},
		{"downtown", 40.7128, -74.0060},
		{"southern hemisphere", -33.8688, 151.2093},
		{"max latitude", 90, 0},
		{"min latitude", -90, 0},
		{"max longitude", 0, 180},
		{"min longitude", 0, -180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := redemptionFixture{
				DealID:  "deal-1",
				UserID:  "user-1",
				VenueID: "venue-1",
				Lat:     tt.lat,
				Lng:     tt.lng,
			}
			if err := ValidateStruct(&input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for lat=%f, lng=%f: %v", tt.lat, tt.lng, err)
			}
		})
	}
}

func TestValidateRedemption_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     redemptionFixture
		wantField string
	}{
		{
			name:      "missing venue id",
			input:     redemptionFixture{DealID: "deal-1", UserID: "user-1"},
			wantField: "VenueID",
		},
		{
			name:      "latitude too high",
			input:     redemptionFixture{DealID: "deal-1", UserID: "user-1", VenueID: "venue-1", Lat: 91},
			wantField: "Lat",
		},
		{
			name:      "latitude too low",
			input:     redemptionFixture{DealID: "deal-1", UserID: "user-1", VenueID: "venue-1", Lat: -91},
			wantField: "Lat",
		},
		{
			name:      "longitude too high",
			input:     redemptionFixture{DealID: "deal-1", UserID: "user-1", VenueID: "venue-1", Lng: 181},
			wantField: "Lng",
		},
		{
			name:      "longitude too low",
			input:     redemptionFixture{DealID: "deal-1", UserID: "user-1", VenueID: "venue-1", Lng: -181},
			wantField: "Lng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected error on field %s, got: %v", tt.wantField, err.Errors())
			}
		})
	}
}

// ===================================================================================================
// Deal Proposal Tests (numeric ranges, datetime)
// ===================================================================================================

func TestValidateDealProposal_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input dealProposalFixture
	}{
		{
			name:  "typical proposal",
			input: dealProposalFixture{Category: "food", DiscountPercent: 25, MaxRedemptions: 100, Price: 30},
		},
		{
			name:  "free deal",
			input: dealProposalFixture{Category: "drinks", DiscountPercent: 100, Price: 0},
		},
		{
			name:  "no discount",
			input: dealProposalFixture{Category: "dessert", DiscountPercent: 0, Price: 12.5},
		},
		{
			name:  "rfc3339 start time",
			input: dealProposalFixture{Category: "brunch", DiscountPercent: 20, StartTime: "2026-09-05T11:00:00Z"},
		},
		{
			name:  "start time with offset",
			input: dealProposalFixture{Category: "brunch", DiscountPercent: 20, StartTime: "2026-09-05T11:00:00-05:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateDealProposal_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     dealProposalFixture
		wantField string
		wantTag   string
	}{
		{
			name:      "missing category",
			input:     dealProposalFixture{DiscountPercent: 25},
			wantField: "Category",
			wantTag:   "required",
		},
		{
			name:      "discount above 100",
			input:     dealProposalFixture{Category: "food", DiscountPercent: 120},
			wantField: "DiscountPercent",
			wantTag:   "lte",
		},
		{
			name:      "negative discount",
			input:     dealProposalFixture{Category: "food", DiscountPercent: -5},
			wantField: "DiscountPercent",
			wantTag:   "gte",
		},
		{
			name:      "negative redemption cap",
			input:     dealProposalFixture{Category: "food", MaxRedemptions: -1},
			wantField: "MaxRedemptions",
			wantTag:   "gte",
		},
		{
			name:      "negative price",
			input:     dealProposalFixture{Category: "food", Price: -10},
			wantField: "Price",
			wantTag:   "gte",
		},
		{
			name:      "date without time",
			input:     dealProposalFixture{Category: "food", StartTime: "2026-09-05"},
			wantField: "StartTime",
			wantTag:   "datetime",
		},
		{
			name:      "garbage start time",
			input:     dealProposalFixture{Category: "food", StartTime: "next friday"},
			wantField: "StartTime",
			wantTag:   "datetime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			found := false
			for _, e := range err.Errors() {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, err.Errors())
			}
		})
	}
}

// ===================================================================================================
// Query Parameter Tests (limits, enums)
// ===================================================================================================

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   queryFixture
		wantErr bool
	}{
		{"default limit", queryFixture{Limit: 10}, false},
		{"max limit", queryFixture{Limit: 50}, false},
		{"trending sort", queryFixture{Limit: 10, Sort: "trending"}, false},
		{"trailing week window", queryFixture{Limit: 10, Window: 168}, false},
		{"limit zero", queryFixture{Limit: 0}, true},
		{"limit above cap", queryFixture{Limit: 500}, true},
		{"window above a week", queryFixture{Limit: 10, Window: 169}, true},
		{"unknown sort", queryFixture{Limit: 10, Sort: "views"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantErr && err == nil {
				t.Error("ValidateStruct() should have returned an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := interactionFixture{DealID: "deal-1", UserID: "user-1", Action: "like"}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("Expected non-empty message")
	}
	if apiErr.Details == nil {
		t.Fatal("Expected details to be set")
	}
	if apiErr.Details["field"] != "Action" {
		t.Errorf("Expected details.field Action, got %v", apiErr.Details["field"])
	}
	if apiErr.Details["tag"] != "oneof" {
		t.Errorf("Expected details.tag oneof, got %v", apiErr.Details["tag"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := interactionFixture{Action: "like"} // missing both IDs, bad action

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if apiErr.Details == nil {
		t.Fatal("Expected details to contain field information")
	}

	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Expected details to contain 'fields' list, got %v", apiErr.Details)
	}
	if len(fields) != 3 {
		t.Errorf("Expected 3 field errors, got %d", len(fields))
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{
			name:  "required field names the field",
			input: &interactionFixture{UserID: "user-1", Action: "view"},
			want:  "DealID is required",
		},
		{
			name:  "oneof lists allowed values",
			input: &interactionFixture{DealID: "deal-1", UserID: "user-1", Action: "like"},
			want:  "Action must be one of: view save share redeem",
		},
		{
			name:  "lte includes the bound",
			input: &dealProposalFixture{Category: "food", DiscountPercent: 120},
			want:  "DiscountPercent must be less than or equal to 100",
		},
		{
			name:  "latitude names the range",
			input: &redemptionFixture{DealID: "d", UserID: "u", VenueID: "v", Lat: 99},
			want:  "Lat must be a valid latitude (-90 to 90)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if msg := err.Error(); !strings.Contains(msg, tt.want) {
				t.Errorf("Error message %q does not contain %q", msg, tt.want)
			}
		})
	}
}

// ===================================================================================================
// Nested Struct Tests
// ===================================================================================================

type redemptionEnvelope struct {
	Event redemptionFixture `validate:"required"`
}

func TestNestedStructValidation(t *testing.T) {
	valid := redemptionEnvelope{
		Event: redemptionFixture{DealID: "deal-1", UserID: "user-1", VenueID: "venue-1"},
	}
	if err := ValidateStruct(&valid); err != nil {
		t.Errorf("ValidateStruct() returned unexpected error for valid nested struct: %v", err)
	}

	invalid := redemptionEnvelope{
		Event: redemptionFixture{DealID: "deal-1", UserID: "user-1"},
	}
	if err := ValidateStruct(&invalid); err == nil {
		t.Error("ValidateStruct() should have returned error for invalid nested struct")
	}
}
