// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package nasa provides data models for NASA Open API responses.
//
// This package contains Go struct definitions for the NASA Open API
// endpoints used by the Heliodeck gateway. Each struct matches the
// upstream JSON format with appropriate tags, plus the reshaped view
// types Heliodeck serves to dashboard clients.
//
// # Overview
//
// Astronomy Picture of the Day (planetary/apod):
//   - APOD: Single picture entry with media type and HD variants
//
// Mars Rover Photos (mars-photos/api/v1):
//   - MarsPhotosResponse, MarsPhoto: Rover photo listings
//   - ManifestResponse, PhotoManifest: Mission manifests with per-sol counts
//   - RoverInfo: Static rover catalog entries served by the gateway
//
// Near Earth Object Web Service (neo/rest/v1):
//   - NEOFeed, NearEarthObject, CloseApproachData: Raw NeoWs payloads
//   - NEOFeedView, NEOSummary, RiskSummary: Reshaped dashboard views
//
// Earth Polychromatic Imaging Camera (EPIC/api):
//   - EPICImage: Raw EPIC metadata entries
//   - EPICImageView: Reshaped entries with constructed archive URLs
package nasa
