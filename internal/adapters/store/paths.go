package store

import "fmt"

// LatestPath addresses the slot holding only the most recent record
// for a device. Overwritten on every successful cycle.
func LatestPath(deviceID string) string {
	return fmt.Sprintf("/devices/%s/latest", deviceID)
}

// HistoryPath addresses one append-only history entry, keyed by
// integer seconds since node start.
func HistoryPath(deviceID string, timestamp int64) string {
	return fmt.Sprintf("/devices/%s/history/%d", deviceID, timestamp)
}
