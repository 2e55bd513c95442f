// Package messaging provides a broker-agnostic publisher used to emit OTP
// lifecycle events.
//
// Supported backends are NATS, NSQ, Kafka and Google Pub/Sub; the driver is
// selected by configuration. Only publishing is modeled: this service has no
// inbound event flows.
package messaging
