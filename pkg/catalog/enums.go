// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import "skystore.io/skystore/pkg/resource"

// Enum columns cross the wire as integers and are stored as their canonical
// uppercase names. Each enum carries a decoder (wire int to name, consulted
// by the validator) and a reverse lookup for reads.

type enumTable struct {
	names  []string
	values map[string]int32
}

func newEnumTable(names ...string) enumTable {
	values := make(map[string]int32, len(names))
	for i, n := range names {
		values[n] = int32(i)
	}
	return enumTable{names: names, values: values}
}

func (t enumTable) decode(v int32) (string, bool) {
	if v < 0 || int(v) >= len(t.names) {
		return "", false
	}
	return t.names[v], true
}

func (t enumTable) value(name string) int32 {
	return t.values[name]
}

var (
	flightStatusTable = newEnumTable(
		"READY", "BOARDING", "IN_FLIGHT", "FINISHED", "CANCELLED", "DRAFT")
	flightPriorityTable = newEnumTable(
		"LOW", "MEDIUM", "HIGH", "EMERGENCY")
	parcelStatusTable = newEnumTable(
		"NOTDROPPEDOFF", "DROPPEDOFF", "ENROUTE", "ARRIVED", "PICKEDUP", "COMPLETE")
	scannerTypeTable = newEnumTable(
		"MOBILE", "LOCKER", "FACILITY", "UNDERBELLY")
	scannerStatusTable = newEnumTable(
		"ACTIVE", "DISABLED")
	authMethodTable = newEnumTable(
		"OAUTH_GOOGLE", "OAUTH_FACEBOOK", "OAUTH_AZURE", "LOCAL")
	groupTypeTable = newEnumTable(
		"ACME", "DISPLAY")
	itineraryStatusTable = newEnumTable(
		"ACTIVE", "CANCELLED")
)

// Wire values for FlightStatus.
const (
	FlightStatusReady int32 = iota
	FlightStatusBoarding
	FlightStatusInFlight
	FlightStatusFinished
	FlightStatusCancelled
	FlightStatusDraft
)

// Wire values for FlightPriority.
const (
	FlightPriorityLow int32 = iota
	FlightPriorityMedium
	FlightPriorityHigh
	FlightPriorityEmergency
)

// Wire values for ParcelStatus.
const (
	ParcelStatusNotDroppedOff int32 = iota
	ParcelStatusDroppedOff
	ParcelStatusEnRoute
	ParcelStatusArrived
	ParcelStatusPickedUp
	ParcelStatusComplete
)

// Wire values for ScannerType.
const (
	ScannerTypeMobile int32 = iota
	ScannerTypeLocker
	ScannerTypeFacility
	ScannerTypeUnderbelly
)

// Wire values for ScannerStatus.
const (
	ScannerStatusActive int32 = iota
	ScannerStatusDisabled
)

// Wire values for AuthMethod.
const (
	AuthMethodOauthGoogle int32 = iota
	AuthMethodOauthFacebook
	AuthMethodOauthAzure
	AuthMethodLocal
)

// Wire values for GroupType.
const (
	GroupTypeAcme int32 = iota
	GroupTypeDisplay
)

// Wire values for ItineraryStatus.
const (
	ItineraryStatusActive int32 = iota
	ItineraryStatusCancelled
)

func decodeEnum(row resource.Row, col string, t enumTable) int32 {
	if v, ok := row[col]; ok {
		return t.value(v.AsString())
	}
	return 0
}
