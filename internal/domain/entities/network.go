package entities

import (
	"time"
)

// ConnectionType classifies the transport the backend link runs over
type ConnectionType string

const (
	ConnectionTypeWifi     ConnectionType = "wifi"
	ConnectionTypeCellular ConnectionType = "cellular"
	ConnectionTypeUnknown  ConnectionType = "unknown"
)

// NetworkStatus is a snapshot of backend connectivity as observed by
// the network monitor. Snapshots are immutable; the monitor publishes
// a fresh copy on every change.
type NetworkStatus struct {
	IsOnline         bool           `json:"is_online"`
	IsSlowConnection bool           `json:"is_slow_connection"`
	ConnectionType   ConnectionType `json:"connection_type"`
	EffectiveType    string         `json:"effective_type"`
	LastOnlineTime   *time.Time     `json:"last_online_time,omitempty"`
	LastOfflineTime  *time.Time     `json:"last_offline_time,omitempty"`
}
