package mqtt

import "context"

// Client represents the publish side of an MQTT connection, kept behind an
// interface for testing and abstraction. The darkmode agent only ever
// publishes; it never subscribes.
type Client interface {
	// Connect establishes a connection to the MQTT broker
	Connect(ctx context.Context) error

	// Disconnect closes the connection to the MQTT broker
	Disconnect()

	// Publish publishes a message to a topic
	Publish(topic string, qos byte, retained bool, payload []byte) error

	// IsConnected returns whether the client is currently connected
	IsConnected() bool
}
