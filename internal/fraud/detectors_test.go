// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package fraud

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/dealradar/internal/models"
)

func TestNewAccountDetector_Check(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		accountAge  time.Duration
		priorCount  int
		expectAlert bool
	}{
		{"young account few redemptions", 2 * time.Hour, 2, false},
		{"young account many redemptions", 2 * time.Hour, 6, true},
		{"old account many redemptions", 72 * time.Hour, 20, false},
		{"boundary: exactly at threshold", 2 * time.Hour, 4, false}, // 4 prior + current = 5, not over
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			detector := NewNewAccountDetector(&mockHistory{redemptionCount: tt.priorCount})

			alert, err := detector.Check(context.Background(), &models.RedemptionEvent{
				DealID:           "d1",
				UserID:           "u1",
				VenueID:          "v1",
				Timestamp:        now,
				AccountCreatedAt: now.Add(-tt.accountAge),
			})
			if err != nil {
				t.Fatalf("Check() returned error: %v", err)
			}

			if tt.expectAlert && alert == nil {
				t.Fatal("expected alert, got nil")
			}
			if !tt.expectAlert && alert != nil {
				t.Fatalf("expected no alert, got: %s", alert.Description)
			}
			if alert != nil {
				if alert.Type != AlertFakeAccount {
					t.Errorf("expected fake_account type, got %s", alert.Type)
				}
				if alert.Severity != SeverityMedium {
					t.Errorf("expected medium severity, got %s", alert.Severity)
				}
				if alert.Confidence != 0.65 {
					t.Errorf("expected confidence 0.65, got %f", alert.Confidence)
				}
			}
		})
	}
}

func TestNewAccountDetector_UnknownAge(t *testing.T) {
	t.Parallel()

	detector := NewNewAccountDetector(&mockHistory{redemptionCount: 50})

	alert, err := detector.Check(context.Background(), &models.RedemptionEvent{
		DealID: "d1", UserID: "u1", VenueID: "v1", Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("Check() returned error: %v", err)
	}
	if alert != nil {
		t.Error("unknown account age must not trigger")
	}
}

func TestDealAbuseDetector_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		priorRepeats int
		expectAlert  bool
		wantSeverity Severity
	}{
		{"first redemption", 0, false, ""},
		{"one repeat", 1, true, SeverityMedium},
		{"two repeats", 2, true, SeverityMedium},
		{"three repeats", 3, true, SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			detector := NewDealAbuseDetector(&mockHistory{dealRedemptions: tt.priorRepeats})

			alert, err := detector.Check(context.Background(), &models.RedemptionEvent{
				DealID: "d1", UserID: "u1", VenueID: "v1", Timestamp: time.Now(),
			})
			if err != nil {
				t.Fatalf("Check() returned error: %v", err)
			}

			if tt.expectAlert && alert == nil {
				t.Fatal("expected alert, got nil")
			}
			if !tt.expectAlert && alert != nil {
				t.Fatalf("expected no alert, got: %s", alert.Description)
			}
			if alert != nil {
				if alert.Severity != tt.wantSeverity {
					t.Errorf("expected severity %s, got %s", tt.wantSeverity, alert.Severity)
				}
				if alert.Confidence != 0.8 {
					t.Errorf("expected confidence 0.8, got %f", alert.Confidence)
				}
				if alert.EntityType != EntityDeal {
					t.Errorf("expected deal entity, got %s", alert.EntityType)
				}
			}
		})
	}
}

func TestCollusionDetector_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		deviceUsers []string
		deviceID    string
		expectAlert bool
	}{
		{"no device id", nil, "", false},
		{"device with two users", []string{"u1", "u2"}, "dev1", false},
		{"device at threshold", []string{"u1", "u2", "u3"}, "dev1", false},
		{"device over threshold", []string{"u2", "u3", "u4"}, "dev1", true}, // +u1 = 4 > 3
		{"current user already counted", []string{"u1", "u2", "u3"}, "dev1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			detector := NewCollusionDetector(&mockHistory{deviceUsers: tt.deviceUsers})

			alert, err := detector.Check(context.Background(), &models.RedemptionEvent{
				DealID: "d1", UserID: "u1", VenueID: "v1", DeviceID: tt.deviceID, Timestamp: time.Now(),
			})
			if err != nil {
				t.Fatalf("Check() returned error: %v", err)
			}

			if tt.expectAlert && alert == nil {
				t.Fatal("expected alert, got nil")
			}
			if !tt.expectAlert && alert != nil {
				t.Fatalf("expected no alert, got: %s", alert.Description)
			}
			if alert != nil {
				if alert.Type != AlertCollusion {
					t.Errorf("expected collusion type, got %s", alert.Type)
				}
				if alert.Severity != SeverityHigh {
					t.Errorf("expected high severity, got %s", alert.Severity)
				}
				if alert.Confidence != 0.85 {
					t.Errorf("expected confidence 0.85, got %f", alert.Confidence)
				}
			}
		})
	}
}

func TestVenueAnomalyDetector_Check(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		dailyAvg    float64
		recentHour  int
		expectAlert bool
	}{
		{"no history", 0, 50, false},
		{"normal hour", 20, 10, false},
		{"burst past threshold", 5, 20, true},        // 21 > 5*3
		{"burst exactly at threshold", 5, 14, false}, // 15 == 5*3, not over
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			history := &mockHistory{
				venueDailyAvg: tt.dailyAvg,
				venueEvents:   redemptionsAt(tt.recentHour, now.Add(-30*time.Minute)),
			}
			detector := NewVenueAnomalyDetector(history)

			alert, err := detector.Check(context.Background(), &models.RedemptionEvent{
				DealID: "d1", UserID: "u1", VenueID: "v1", Timestamp: now,
			})
			if err != nil {
				t.Fatalf("Check() returned error: %v", err)
			}

			if tt.expectAlert && alert == nil {
				t.Fatal("expected alert, got nil")
			}
			if !tt.expectAlert && alert != nil {
				t.Fatalf("expected no alert, got: %s", alert.Description)
			}
			if alert != nil {
				if alert.EntityType != EntityVenue {
					t.Errorf("expected venue entity, got %s", alert.EntityType)
				}
				if alert.Severity != SeverityMedium {
					t.Errorf("expected medium severity, got %s", alert.Severity)
				}
				if alert.Confidence != 0.6 {
					t.Errorf("expected confidence 0.6, got %f", alert.Confidence)
				}
			}
		})
	}
}

func TestSeverityRank(t *testing.T) {
	t.Parallel()

	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("expected %s to outrank %s", ordered[i], ordered[i-1])
		}
	}
}
