// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package nasa

import (
	"strings"

	nasamodels "github.com/tomtom215/heliodeck/internal/models/nasa"
)

// roverCatalog is the fixed set of rovers the gateway accepts, with the
// instrument codes valid for each. Rover and camera lookups are
// case-insensitive; keys are lowercase, camera codes uppercase.
var roverCatalog = map[string]nasamodels.RoverInfo{
	"curiosity": {
		Name:        "Curiosity",
		Status:      "active",
		LandingDate: "2012-08-06",
		LaunchDate:  "2011-11-26",
		Cameras:     []string{"FHAZ", "RHAZ", "MAST", "CHEMCAM", "MAHLI", "MARDI", "NAVCAM"},
	},
	"perseverance": {
		Name:        "Perseverance",
		Status:      "active",
		LandingDate: "2021-02-18",
		LaunchDate:  "2020-07-30",
		Cameras: []string{
			"EDL_RUCAM", "EDL_RDCAM", "EDL_DDCAM", "EDL_PUCAM1", "EDL_PUCAM2",
			"NAVCAM_LEFT", "NAVCAM_RIGHT", "MCZ_LEFT", "MCZ_RIGHT",
			"FRONT_HAZCAM_LEFT_A", "FRONT_HAZCAM_RIGHT_A", "REAR_HAZCAM_LEFT", "REAR_HAZCAM_RIGHT",
			"SKYCAM", "SHERLOC_WATSON",
		},
	},
	"opportunity": {
		Name:        "Opportunity",
		Status:      "complete",
		LandingDate: "2004-01-25",
		LaunchDate:  "2003-07-07",
		Cameras:     []string{"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"},
	},
	"spirit": {
		Name:        "Spirit",
		Status:      "complete",
		LandingDate: "2004-01-04",
		LaunchDate:  "2003-06-10",
		Cameras:     []string{"FHAZ", "RHAZ", "NAVCAM", "PANCAM", "MINITES"},
	},
}

// roverOrder fixes the listing order of the rover catalog endpoint.
var roverOrder = []string{"curiosity", "perseverance", "opportunity", "spirit"}

// Rovers returns the fixed rover catalog in listing order.
func Rovers() []nasamodels.RoverInfo {
	rovers := make([]nasamodels.RoverInfo, 0, len(roverOrder))
	for _, key := range roverOrder {
		rovers = append(rovers, roverCatalog[key])
	}
	return rovers
}

// ValidRover reports whether name is a known rover, case-insensitively.
func ValidRover(name string) bool {
	_, ok := roverCatalog[strings.ToLower(name)]
	return ok
}

// RoverCameras returns the camera catalog keyed by lowercase rover name,
// in the shape the validation package consumes.
func RoverCameras() map[string][]string {
	catalog := make(map[string][]string, len(roverCatalog))
	for key, rover := range roverCatalog {
		catalog[key] = rover.Cameras
	}
	return catalog
}
