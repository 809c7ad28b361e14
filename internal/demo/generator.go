// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tomtom215/dealradar/internal/analytics"
	"github.com/tomtom215/dealradar/internal/logging"
	"github.com/tomtom215/dealradar/internal/models"
	"github.com/tomtom215/dealradar/internal/pricing"
)

// Venue is a synthetic venue used only by demo mode.
type Venue struct {
	ID       string
	Type     string
	Location models.Location
}

var venueNames = []string{
	"rusty-anchor", "golden-fork", "night-owl", "corner-bakery",
	"harbor-grill", "velvet-room", "daily-grind", "sunset-terrace",
}

var venueTypes = []string{
	"restaurant", "restaurant", "bar", "bakery",
	"restaurant", "bar", "cafe", "restaurant",
}

var dealCategories = []string{"food", "drinks", "dessert", "brunch", "entertainment"}

// downtownAnchor centers all synthetic locations so proximity scoring has
// something to bite on.
var downtownAnchor = models.Location{Latitude: 40.7128, Longitude: -74.0060}

// Generator produces deterministic synthetic data from one seed.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a Generator. The same seed and now always produce
// identical output.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Venues returns up to len(venueNames) synthetic venues scattered around
// the downtown anchor.
func (g *Generator) Venues(n int) []Venue {
	if n > len(venueNames) {
		n = len(venueNames)
	}

	venues := make([]Venue, 0, n)
	for i := 0; i < n; i++ {
		venues = append(venues, Venue{
			ID:   venueNames[i],
			Type: venueTypes[i],
			Location: models.Location{
				Latitude:  downtownAnchor.Latitude + (g.rng.Float64()-0.5)*0.05,
				Longitude: downtownAnchor.Longitude + (g.rng.Float64()-0.5)*0.05,
			},
		})
	}
	return venues
}

// Deals returns perVenue active deals per venue, plus a few freshly
// launched ones so the [new] badge has material.
func (g *Generator) Deals(venues []Venue, perVenue int) []*models.Deal {
	var deals []*models.Deal
	for _, venue := range venues {
		for i := 0; i < perVenue; i++ {
			category := dealCategories[g.rng.Intn(len(dealCategories))]
			age := time.Duration(g.rng.Intn(72)) * time.Hour
			views := 200 + g.rng.Intn(2000)

			deal := &models.Deal{
				ID:             fmt.Sprintf("%s-deal-%d", venue.ID, i+1),
				VenueID:        venue.ID,
				VenueType:      venue.Type,
				Category:       category,
				Title:          fmt.Sprintf("%s special #%d", category, i+1),
				DiscountType:   models.DiscountPercentage,
				DiscountValue:  float64(10 + g.rng.Intn(8)*5),
				Price:          10 + float64(g.rng.Intn(40)),
				Location:       venue.Location,
				StartTime:      g.now.Add(-age),
				EndTime:        g.now.Add(time.Duration(4+g.rng.Intn(44)) * time.Hour),
				MaxRedemptions: 50 + g.rng.Intn(150),
				Views:          views,
				Saves:          views * (5 + g.rng.Intn(15)) / 100,
				Shares:         views * g.rng.Intn(4) / 100,
				CreatedAt:      g.now.Add(-age),
			}
			deal.Redemptions = int(float64(deal.Views) * (0.02 + g.rng.Float64()*0.12))
			if deal.Redemptions > deal.MaxRedemptions {
				deal.Redemptions = deal.MaxRedemptions
			}
			deals = append(deals, deal)
		}
	}
	return deals
}

// customerArchetype shapes one synthetic customer population slice.
type customerArchetype struct {
	weight       int
	visits       [2]int     // min, max
	spendPerSeat [2]float64 // min, max per visit
	lastVisitMax int        // days ago
	firstVisit   int        // days ago
}

var archetypes = []customerArchetype{
	{weight: 1, visits: [2]int{12, 25}, spendPerSeat: [2]float64{60, 120}, lastVisitMax: 7, firstVisit: 300}, // champions
	{weight: 3, visits: [2]int{6, 12}, spendPerSeat: [2]float64{25, 60}, lastVisitMax: 14, firstVisit: 200},  // regulars
	{weight: 2, visits: [2]int{4, 10}, spendPerSeat: [2]float64{10, 25}, lastVisitMax: 21, firstVisit: 150},  // deal hunters
	{weight: 2, visits: [2]int{3, 8}, spendPerSeat: [2]float64{20, 50}, lastVisitMax: 100, firstVisit: 250},  // drifting away
	{weight: 2, visits: [2]int{1, 3}, spendPerSeat: [2]float64{15, 45}, lastVisitMax: 10, firstVisit: 30},    // newcomers
}

// Customers returns n per-venue customer aggregates drawn from a weighted
// mix of behavioral archetypes.
func (g *Generator) Customers(venueID string, n int) []*models.CustomerRecord {
	var pool []customerArchetype
	for _, a := range archetypes {
		for i := 0; i < a.weight; i++ {
			pool = append(pool, a)
		}
	}

	customers := make([]*models.CustomerRecord, 0, n)
	for i := 0; i < n; i++ {
		a := pool[g.rng.Intn(len(pool))]
		visits := a.visits[0] + g.rng.Intn(a.visits[1]-a.visits[0]+1)
		perVisit := a.spendPerSeat[0] + g.rng.Float64()*(a.spendPerSeat[1]-a.spendPerSeat[0])

		lastVisit := g.now.AddDate(0, 0, -1-g.rng.Intn(a.lastVisitMax))
		firstVisit := g.now.AddDate(0, 0, -a.firstVisit+g.rng.Intn(30))
		if firstVisit.After(lastVisit) {
			firstVisit = lastVisit.AddDate(0, 0, -30)
		}

		customers = append(customers, &models.CustomerRecord{
			CustomerID:         fmt.Sprintf("%s-cust-%03d", venueID, i+1),
			VenueID:            venueID,
			VisitCount:         visits,
			TotalSpend:         perVisit * float64(visits),
			AvgSpend:           perVisit,
			FirstVisit:         firstVisit,
			LastVisit:          lastVisit,
			Redemptions:        g.rng.Intn(visits + 1),
			FavoriteCategories: []string{dealCategories[g.rng.Intn(len(dealCategories))]},
		})
	}
	return customers
}

// Profiles returns n user profiles with category affinities and locations
// near downtown.
func (g *Generator) Profiles(n int) []*models.UserPreferences {
	profiles := make([]*models.UserPreferences, 0, n)
	for i := 0; i < n; i++ {
		p := models.NewUserPreferences(fmt.Sprintf("user-%03d", i+1), g.now.AddDate(0, 0, -g.rng.Intn(180)))
		p.Location = models.Location{
			Latitude:  downtownAnchor.Latitude + (g.rng.Float64()-0.5)*0.08,
			Longitude: downtownAnchor.Longitude + (g.rng.Float64()-0.5)*0.08,
		}
		p.PriceRange = models.PriceRange{Min: 5, Max: 20 + float64(g.rng.Intn(40))}

		// Each user leans toward two categories.
		for _, c := range g.pickCategories(2) {
			p.CuisineAffinity[c] = 0.4 + g.rng.Float64()*0.6
		}
		p.PreferredHours = []int{11 + g.rng.Intn(11)}
		profiles = append(profiles, p)
	}
	return profiles
}

func (g *Generator) pickCategories(n int) []string {
	picked := make([]string, 0, n)
	perm := g.rng.Perm(len(dealCategories))
	for i := 0; i < n && i < len(perm); i++ {
		picked = append(picked, dealCategories[perm[i]])
	}
	return picked
}

// Activities returns n interaction events spread across the last two
// weeks. Views dominate; saves, shares and redeems trail off in that order.
func (g *Generator) Activities(deals []*models.Deal, profiles []*models.UserPreferences, n int) []models.UserActivity {
	if len(deals) == 0 || len(profiles) == 0 {
		return nil
	}

	activities := make([]models.UserActivity, 0, n)
	for i := 0; i < n; i++ {
		deal := deals[g.rng.Intn(len(deals))]
		user := profiles[g.rng.Intn(len(profiles))]

		action := models.ActionView
		switch roll := g.rng.Float64(); {
		case roll > 0.90:
			action = models.ActionRedeem
		case roll > 0.85:
			action = models.ActionShare
		case roll > 0.70:
			action = models.ActionSave
		}

		hour := 12 + g.rng.Intn(10)
		if len(user.PreferredHours) > 0 && g.rng.Float64() < 0.6 {
			hour = user.PreferredHours[0]
		}
		day := g.now.AddDate(0, 0, -g.rng.Intn(14))
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, g.rng.Intn(60), 0, 0, day.Location())

		activities = append(activities, models.UserActivity{
			DealID:    deal.ID,
			UserID:    user.UserID,
			VenueID:   deal.VenueID,
			Action:    action,
			Timestamp: at,
			Location:  user.Location,
			DeviceID:  fmt.Sprintf("device-%s", user.UserID),
		})
	}
	return activities
}

// TrafficHistory returns days of hourly samples with lunch and evening
// peaks, a weekend lift and mild noise, clamped to [0, 100].
func (g *Generator) TrafficHistory(venueID string, days int) []models.TrafficSample {
	samples := make([]models.TrafficSample, 0, days*24)
	for d := days; d > 0; d-- {
		day := g.now.AddDate(0, 0, -d)
		for hour := 0; hour < 24; hour++ {
			traffic := 15.0
			switch {
			case hour >= 12 && hour <= 14:
				traffic = 55
			case hour >= 18 && hour <= 21:
				traffic = 70
			case hour >= 15 && hour < 18:
				traffic = 35
			case hour >= 22 || hour < 2:
				traffic = 25
			}

			weekday := day.Weekday()
			if (weekday == time.Friday || weekday == time.Saturday) && hour >= 18 {
				traffic *= 1.3
			}

			traffic += (g.rng.Float64() - 0.5) * 16
			if traffic < 0 {
				traffic = 0
			}
			if traffic > 100 {
				traffic = 100
			}

			samples = append(samples, models.TrafficSample{
				VenueID:   venueID,
				Timestamp: time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location()),
				Traffic:   traffic,
			})
		}
	}
	return samples
}

// DealHistory returns n completed deal records whose redemption rate rises
// with discount depth, so the elasticity estimator sees real signal.
func (g *Generator) DealHistory(venueID string, n int) []pricing.DealRecord {
	records := make([]pricing.DealRecord, 0, n)
	for i := 0; i < n; i++ {
		discount := float64(10 + g.rng.Intn(8)*5)
		views := 300 + g.rng.Intn(600)
		rate := 0.03 + discount/100*0.25 + (g.rng.Float64()-0.5)*0.02
		if rate < 0.01 {
			rate = 0.01
		}
		price := 12 + float64(g.rng.Intn(30))
		redemptions := int(float64(views) * rate)

		records = append(records, pricing.DealRecord{
			DealID:          fmt.Sprintf("%s-hist-%d", venueID, i+1),
			VenueID:         venueID,
			Category:        dealCategories[g.rng.Intn(len(dealCategories))],
			Price:           price,
			DiscountPercent: discount,
			Views:           views,
			Redemptions:     redemptions,
			Revenue:         float64(redemptions) * price * (1 - discount/100),
		})
	}
	return records
}

// CompetitorBenchmarks returns plausible market-average discounts per
// category.
func (g *Generator) CompetitorBenchmarks() map[string]float64 {
	benchmarks := make(map[string]float64, len(dealCategories))
	for _, c := range dealCategories {
		benchmarks[c] = 15 + float64(g.rng.Intn(4)*5)
	}
	return benchmarks
}

// Seed populates the analytics service with one coherent synthetic world:
// 5 venues, 4 deals each, 40 customers and 28 days of traffic per venue,
// 60 user profiles and 1200 interactions.
func (g *Generator) Seed(service *analytics.Service) {
	venues := g.Venues(5)
	deals := g.Deals(venues, 4)
	profiles := g.Profiles(60)

	service.LoadCatalog(deals)
	service.LoadUserProfiles(profiles)
	service.LoadActivities(g.Activities(deals, profiles, 1200))
	service.LoadCompetitorBenchmarks(g.CompetitorBenchmarks())

	for _, venue := range venues {
		service.LoadCustomerData(venue.ID, g.Customers(venue.ID, 40))
		service.LoadHistoricalData(venue.ID, g.TrafficHistory(venue.ID, 28))
		service.LoadDealMetrics(venue.ID, g.DealHistory(venue.ID, 12), nil)
	}

	logging.Info().
		Int("venues", len(venues)).
		Int("deals", len(deals)).
		Int("profiles", len(profiles)).
		Msg("demo data seeded")
}
