// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

// APOD represents a single Astronomy Picture of the Day entry from
// planetary/apod. MediaType is "image" or "video"; HDURL and Thumbnail
// are only present for some entries.
type APOD struct {
	Date           string `json:"date"`
	Title          string `json:"title"`
	Explanation    string `json:"explanation"`
	URL            string `json:"url"`
	HDURL          string `json:"hdurl,omitempty"`
	MediaType      string `json:"media_type"`
	ServiceVersion string `json:"service_version,omitempty"`
	Copyright      string `json:"copyright,omitempty"`
	Thumbnail      string `json:"thumbnail_url,omitempty"`
}
