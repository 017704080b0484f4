package models

import "fmt"

// DeviceReading is one snapshot of one device's telemetry, keyed by the
// upstream field names. The vendor API makes no type guarantees, so values
// are kept exactly as received and shaped only by the sanitizer.
type DeviceReading map[string]any

// CellCount is the number of per-cell voltage and temperature slots reported
// by the battery management system.
const CellCount = 16

// Columns lists device_data columns in insert order. The mixed-case names
// match the upstream payload keys; unquoted in SQL they fold to the actual
// lowercase column names.
var Columns = buildColumns()

func buildColumns() []string {
	cols := []string{
		"imei", "assetname", "gpsiat", "latitude", "longitude", "direction", "speed",
		"disttravelled_all", "disttravelled_today", "bmsiat", "cc", "voltage", "current", "soc",
		"maxvoltagecellvalue", "maxvltagecellnumber",
		"minvoltagecellvalue", "minvoltagecellnumber",
		"ChargeDischargeStatus", "ChargingCurrent", "dischargingcurrent", "DeviceStatus",
		"serial", "barcode",
	}
	for i := 1; i <= CellCount; i++ {
		cols = append(cols, fmt.Sprintf("cellVolt%d", i))
	}
	for i := 1; i <= CellCount; i++ {
		cols = append(cols, fmt.Sprintf("cellTemp%d", i))
	}
	return append(cols, "charging", "avgrangekm", "maxrangekm", "minrangekm", "created_at")
}
