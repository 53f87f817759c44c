package models

// ConnectionState describes the lifecycle of a feed channel connection.
// State is owned solely by the feed client; transitions drive callback
// invocation and reconnection scheduling.
type ConnectionState string

const (
	ConnectionStateDisconnected ConnectionState = "disconnected"
	ConnectionStateConnecting   ConnectionState = "connecting"
	ConnectionStateConnected    ConnectionState = "connected"
)
