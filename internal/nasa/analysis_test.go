// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
)

func TestCategorizeSize(t *testing.T) {
	tests := []struct {
		diameter float64
		want     string
	}{
		{0.0005, "TINY"},
		{0.005, "SMALL"},
		{0.05, "MEDIUM"},
		{0.5, "LARGE"},
		{5, "MASSIVE"},
		{0.001, "SMALL"},
		{0.01, "MEDIUM"},
		{0.1, "LARGE"},
		{1.0, "MASSIVE"},
	}

	for _, tt := range tests {
		if got := CategorizeSize(tt.diameter); got != tt.want {
			t.Errorf("CategorizeSize(%v) = %s, want %s", tt.diameter, got, tt.want)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	if RiskLevel(true) != "HIGH" {
		t.Error("Expected HIGH for hazardous")
	}
	if RiskLevel(false) != "LOW" {
		t.Error("Expected LOW for non-hazardous")
	}
}

func feedObject(name string, hazardous bool, diameterKM float64, approaches ...nasamodels.CloseApproachData) nasamodels.NearEarthObject {
	return nasamodels.NearEarthObject{
		ID:   name,
		Name: name,
		EstimatedDiameter: nasamodels.EstimatedDiameter{
			Kilometers: nasamodels.DiameterRange{
				EstimatedDiameterMin: diameterKM / 2,
				EstimatedDiameterMax: diameterKM,
			},
		},
		IsPotentiallyHazardousAsteroid: hazardous,
		CloseApproachData:              approaches,
	}
}

func approach(date, distanceKM, velocityKMH string) nasamodels.CloseApproachData {
	return nasamodels.CloseApproachData{
		CloseApproachDate: date,
		MissDistance:      nasamodels.MissDistance{Kilometers: distanceKM},
		RelativeVelocity:  nasamodels.RelativeVelocity{KilometersPerHour: velocityKMH},
	}
}

func TestComputeRiskSummary(t *testing.T) {
	feed := &nasamodels.NEOFeed{
		ElementCount: 2,
		NearEarthObjects: map[string][]nasamodels.NearEarthObject{
			"2026-01-15": {
				feedObject("small-safe", false, 0.5, approach("2026-01-15", "1000000", "40000")),
				feedObject("big-hazard", true, 2.0, approach("2026-01-15", "500000", "60000")),
			},
		},
	}

	summary := ComputeRiskSummary(feed)

	if summary.TotalObjects != 2 {
		t.Errorf("Expected 2 total, got %d", summary.TotalObjects)
	}
	if summary.PotentiallyHazardousCount != 1 {
		t.Errorf("Expected 1 hazardous, got %d", summary.PotentiallyHazardousCount)
	}
	if summary.CloseApproachCount != 2 {
		t.Errorf("Expected 2 approaches, got %d", summary.CloseApproachCount)
	}
	if summary.LargestObject == nil || summary.LargestObject.DiameterKM != 2.0 {
		t.Fatalf("Expected largest diameter 2.0, got %+v", summary.LargestObject)
	}
	if summary.LargestObject.Name != "big-hazard" || !summary.LargestObject.IsHazardous {
		t.Errorf("Expected big-hazard as largest, got %+v", summary.LargestObject)
	}
	if summary.ClosestApproach == nil || summary.ClosestApproach.DistanceKM != 500000 {
		t.Fatalf("Expected closest at 500000 km, got %+v", summary.ClosestApproach)
	}
	if summary.ClosestApproach.VelocityKMH != 60000 {
		t.Errorf("Expected velocity 60000, got %f", summary.ClosestApproach.VelocityKMH)
	}
}

func TestComputeRiskSummaryFirstSeenWinsTies(t *testing.T) {
	feed := &nasamodels.NEOFeed{
		NearEarthObjects: map[string][]nasamodels.NearEarthObject{
			"2026-01-15": {
				feedObject("first", false, 1.0),
				feedObject("second", false, 1.0),
			},
		},
	}

	summary := ComputeRiskSummary(feed)
	if summary.LargestObject.Name != "first" {
		t.Errorf("Expected first object to win diameter tie, got %s", summary.LargestObject.Name)
	}
}

func TestComputeRiskSummaryEmptyFeed(t *testing.T) {
	summary := ComputeRiskSummary(&nasamodels.NEOFeed{})
	if summary.LargestObject != nil || summary.ClosestApproach != nil {
		t.Error("Expected nil extremes for empty feed")
	}
	if summary.TotalObjects != 0 {
		t.Errorf("Expected 0 objects, got %d", summary.TotalObjects)
	}
}

func TestNextApproach(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	neo := feedObject("test", false, 0.1,
		approach("2020-06-01", "1", "1"),
		approach("2026-03-10", "1", "1"),
		approach("2026-02-01", "1", "1"),
		approach("2026-01-15", "1", "1"), // today, not strictly future
	)

	next := NextApproach(&neo, now)
	if next == nil {
		t.Fatal("Expected a future approach")
	}
	if next.CloseApproachDate != "2026-02-01" {
		t.Errorf("Expected earliest future approach 2026-02-01, got %s", next.CloseApproachDate)
	}
}

func TestNextApproachNoneFuture(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	neo := feedObject("test", false, 0.1, approach("2020-06-01", "1", "1"))
	if next := NextApproach(&neo, now); next != nil {
		t.Errorf("Expected nil, got %+v", next)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	neo := feedObject("hazard", true, 0.05, approach("2026-06-01", "1", "1"))

	summary := Summarize(&neo, now)

	if summary.SizeCategory != "MEDIUM" {
		t.Errorf("Expected MEDIUM, got %s", summary.SizeCategory)
	}
	if summary.RiskLevel != "HIGH" {
		t.Errorf("Expected HIGH, got %s", summary.RiskLevel)
	}
	if summary.NextApproach == nil || summary.NextApproach.CloseApproachDate != "2026-06-01" {
		t.Errorf("Expected next approach 2026-06-01, got %+v", summary.NextApproach)
	}
	if summary.ApproachCount != 1 {
		t.Errorf("Expected 1 approach, got %d", summary.ApproachCount)
	}
}

func TestSummarizeNoFutureApproachMarshalsNull(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	neo := feedObject("past-only", false, 0.05, approach("2020-06-01", "1", "1"))

	summary := Summarize(&neo, now)
	if summary.NextApproach != nil {
		t.Fatalf("Expected nil next approach, got %+v", summary.NextApproach)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"next_approach":null`) {
		t.Errorf("Expected explicit null next_approach, got %s", data)
	}
}

func TestHazardousFromFeed(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	feed := &nasamodels.NEOFeed{
		NearEarthObjects: map[string][]nasamodels.NearEarthObject{
			"2026-01-15": {
				feedObject("safe", false, 5.0),
				feedObject("small-hazard", true, 0.2),
			},
			"2026-01-16": {
				feedObject("big-hazard", true, 1.5),
			},
		},
	}

	hazards := HazardousFromFeed(feed, now)

	if len(hazards) != 2 {
		t.Fatalf("Expected 2 hazardous, got %d", len(hazards))
	}
	if hazards[0].Name != "big-hazard" || hazards[1].Name != "small-hazard" {
		t.Errorf("Expected descending diameter order, got %s then %s", hazards[0].Name, hazards[1].Name)
	}
}

func TestEPICImageURL(t *testing.T) {
	url, err := EPICImageURL("natural", "2026-01-14 00:31:45", "epic_1b_20260114003634")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "https://epic.gsfc.nasa.gov/archive/natural/2026/01/14/png/epic_1b_20260114003634.png"
	if url != want {
		t.Errorf("Expected %s, got %s", want, url)
	}
}

func TestEPICThumbnailURL(t *testing.T) {
	url, err := EPICThumbnailURL("enhanced", "2026-01-14 00:31:45", "epic_RGB_20260114003634")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "https://epic.gsfc.nasa.gov/archive/enhanced/2026/01/14/thumbs/epic_RGB_20260114003634.jpg"
	if url != want {
		t.Errorf("Expected %s, got %s", want, url)
	}
}

func TestReshapeEPIC(t *testing.T) {
	images := []nasamodels.EPICImage{
		{
			Identifier:          "20260114003634",
			Image:               "epic_1b_20260114003634",
			Date:                "2026-01-14 00:31:45",
			CentroidCoords:      nasamodels.EPICCoordinates{Lat: -17.0, Lon: 159.9},
			AttitudeQuaternions: nasamodels.EPICQuaternions{Q0: -0.308, Q1: -0.169, Q2: 0.298, Q3: 0.888},
		},
		{
			Identifier: "bad-date",
			Image:      "epic_1b_bad",
			Date:       "not a date",
		},
	}

	views := ReshapeEPIC(images, "natural")

	if len(views) != 1 {
		t.Fatalf("Expected 1 view (bad date skipped), got %d", len(views))
	}
	if views[0].ImageURL == "" || views[0].ThumbnailURL == "" {
		t.Error("Expected constructed URLs")
	}
	if views[0].Centroid.Lat != -17.0 {
		t.Errorf("Expected centroid preserved, got %+v", views[0].Centroid)
	}
	if views[0].Metadata.AttitudeQuaternions.Q3 != 0.888 {
		t.Errorf("Expected attitude quaternions preserved, got %+v", views[0].Metadata.AttitudeQuaternions)
	}
}

func TestRoverCatalog(t *testing.T) {
	rovers := Rovers()
	if len(rovers) != 4 {
		t.Fatalf("Expected 4 rovers, got %d", len(rovers))
	}
	if rovers[0].Name != "Curiosity" {
		t.Errorf("Expected Curiosity first, got %s", rovers[0].Name)
	}

	if !ValidRover("CURIOSITY") || !ValidRover("perseverance") {
		t.Error("Expected case-insensitive rover lookup")
	}
	if ValidRover("sojourner") {
		t.Error("Expected unknown rover to be rejected")
	}

	catalog := RoverCameras()
	if len(catalog["spirit"]) == 0 {
		t.Error("Expected spirit cameras in catalog")
	}
}
