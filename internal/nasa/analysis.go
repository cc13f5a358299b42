// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
)

// Size category thresholds in kilometers, applied to the maximum
// estimated diameter.
const (
	sizeTinyKM   = 0.001
	sizeSmallKM  = 0.01
	sizeMediumKM = 0.1
	sizeLargeKM  = 1.0
)

// CategorizeSize buckets an asteroid by maximum estimated diameter in km.
func CategorizeSize(diameterKM float64) string {
	switch {
	case diameterKM < sizeTinyKM:
		return "TINY"
	case diameterKM < sizeSmallKM:
		return "SMALL"
	case diameterKM < sizeMediumKM:
		return "MEDIUM"
	case diameterKM < sizeLargeKM:
		return "LARGE"
	default:
		return "MASSIVE"
	}
}

// RiskLevel maps the hazardous flag to a display level.
func RiskLevel(hazardous bool) string {
	if hazardous {
		return "HIGH"
	}
	return "LOW"
}

// parseFloat tolerates the string-typed numerics NeoWs returns; malformed
// values parse as 0 rather than failing the whole summary.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// ComputeRiskSummary scans all objects across all dates in a feed and
// aggregates counts plus the largest object and closest approach.
// Comparisons are strict, so the first object seen at an extreme wins
// ties. The summary is recomputed on every request from the raw payload.
func ComputeRiskSummary(feed *nasamodels.NEOFeed) nasamodels.RiskSummary {
	summary := nasamodels.RiskSummary{}
	if feed == nil {
		return summary
	}

	// Iterate dates in sorted order so tie-breaking is deterministic.
	dates := make([]string, 0, len(feed.NearEarthObjects))
	for date := range feed.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		for i := range feed.NearEarthObjects[date] {
			neo := &feed.NearEarthObjects[date][i]
			summary.TotalObjects++
			if neo.IsPotentiallyHazardousAsteroid {
				summary.PotentiallyHazardousCount++
			}
			summary.CloseApproachCount += len(neo.CloseApproachData)

			diameter := neo.EstimatedDiameter.Kilometers.EstimatedDiameterMax
			if summary.LargestObject == nil || diameter > summary.LargestObject.DiameterKM {
				summary.LargestObject = &nasamodels.LargestObject{
					Name:        neo.Name,
					DiameterKM:  diameter,
					IsHazardous: neo.IsPotentiallyHazardousAsteroid,
				}
			}

			for _, approach := range neo.CloseApproachData {
				distance := parseFloat(approach.MissDistance.Kilometers)
				if distance <= 0 {
					continue
				}
				if summary.ClosestApproach == nil || distance < summary.ClosestApproach.DistanceKM {
					summary.ClosestApproach = &nasamodels.ClosestApproach{
						ObjectName:  neo.Name,
						DistanceKM:  distance,
						Date:        approach.CloseApproachDate,
						VelocityKMH: parseFloat(approach.RelativeVelocity.KilometersPerHour),
					}
				}
			}
		}
	}

	return summary
}

// NextApproach returns the earliest close approach strictly after now, or
// nil when no future approach exists.
func NextApproach(neo *nasamodels.NearEarthObject, now time.Time) *nasamodels.CloseApproachData {
	var next *nasamodels.CloseApproachData
	var nextT time.Time

	for i := range neo.CloseApproachData {
		approach := &neo.CloseApproachData[i]
		t, err := time.Parse("2006-01-02", approach.CloseApproachDate)
		if err != nil {
			continue
		}
		if !t.After(now) {
			continue
		}
		if next == nil || t.Before(nextT) {
			next = approach
			nextT = t
		}
	}

	return next
}

// Summarize projects an asteroid to the condensed dashboard shape:
// size category, risk level, and the next future approach relative to now.
func Summarize(neo *nasamodels.NearEarthObject, now time.Time) nasamodels.NEOSummary {
	diameterMax := neo.EstimatedDiameter.Kilometers.EstimatedDiameterMax
	return nasamodels.NEOSummary{
		ID:            neo.ID,
		Name:          neo.Name,
		DiameterKMMin: neo.EstimatedDiameter.Kilometers.EstimatedDiameterMin,
		DiameterKMMax: diameterMax,
		SizeCategory:  CategorizeSize(diameterMax),
		Hazardous:     neo.IsPotentiallyHazardousAsteroid,
		RiskLevel:     RiskLevel(neo.IsPotentiallyHazardousAsteroid),
		NextApproach:  NextApproach(neo, now),
		ApproachCount: len(neo.CloseApproachData),
		NASAJPLURL:    neo.NASAJPLURL,
	}
}

// HazardousFromFeed filters a feed to potentially hazardous asteroids,
// projects them to summaries, and sorts descending by maximum diameter.
func HazardousFromFeed(feed *nasamodels.NEOFeed, now time.Time) []nasamodels.NEOSummary {
	summaries := []nasamodels.NEOSummary{}
	if feed == nil {
		return summaries
	}

	dates := make([]string, 0, len(feed.NearEarthObjects))
	for date := range feed.NearEarthObjects {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		for i := range feed.NearEarthObjects[date] {
			neo := &feed.NearEarthObjects[date][i]
			if !neo.IsPotentiallyHazardousAsteroid {
				continue
			}
			summaries = append(summaries, Summarize(neo, now))
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].DiameterKMMax > summaries[j].DiameterKMMax
	})

	return summaries
}

// EPICImageURL constructs the archive URL for an EPIC image from its
// capture timestamp ("2026-01-14 00:31:45"), collection ("natural" or
// "enhanced"), and image identifier. Full-size images are PNG.
func EPICImageURL(collection, date, image string) (string, error) {
	t, err := time.Parse("2006-01-02 15:04:05", date)
	if err != nil {
		// Dates listing entries carry date-only values.
		t, err = time.Parse("2006-01-02", date)
		if err != nil {
			return "", fmt.Errorf("unrecognized EPIC date %q: %w", date, err)
		}
	}

	return fmt.Sprintf("https://epic.gsfc.nasa.gov/archive/%s/%04d/%02d/%02d/png/%s.png",
		collection, t.Year(), t.Month(), t.Day(), image), nil
}

// EPICThumbnailURL constructs the archive URL of the JPG thumbnail for an
// EPIC image.
func EPICThumbnailURL(collection, date, image string) (string, error) {
	full, err := EPICImageURL(collection, date, image)
	if err != nil {
		return "", err
	}
	full = strings.Replace(full, "/png/", "/thumbs/", 1)
	return strings.TrimSuffix(full, ".png") + ".jpg", nil
}

// ReshapeEPIC converts raw EPIC metadata entries into the client-facing
// view with constructed archive URLs. Entries whose date cannot be parsed
// are skipped.
func ReshapeEPIC(images []nasamodels.EPICImage, collection string) []nasamodels.EPICImageView {
	views := make([]nasamodels.EPICImageView, 0, len(images))
	for _, img := range images {
		imageURL, err := EPICImageURL(collection, img.Date, img.Image)
		if err != nil {
			continue
		}
		thumbURL, err := EPICThumbnailURL(collection, img.Date, img.Image)
		if err != nil {
			continue
		}

		views = append(views, nasamodels.EPICImageView{
			Identifier:   img.Identifier,
			Caption:      img.Caption,
			Date:         img.Date,
			ImageURL:     imageURL,
			ThumbnailURL: thumbURL,
			Centroid:     img.CentroidCoords,
			Metadata: nasamodels.EPICMetadata{
				DSCOVRPosition:      img.DSCOVRPosition,
				LunarPosition:       img.LunarPosition,
				SunPosition:         img.SunPosition,
				AttitudeQuaternions: img.AttitudeQuaternions,
			},
		})
	}
	return views
}
