// Package feed adapts a GTFS-Realtime VehiclePositions feed into the
// position-update stream the guidance layer consumes, so a tracked transit
// vehicle can be guided with the same engine that guides a pedestrian.
package feed
