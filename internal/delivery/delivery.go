// Package delivery publishes soil readings upstream with abstraction for
// testing. Two real transports exist: MQTT and a plain HTTP webhook.
package delivery

import "encoding/json"

// Reading is one delivered measurement.
type Reading struct {
	Raw       int     // averaged raw ADC value
	Percent   float64 // mapped moisture percentage
	Timestamp int64   // epoch seconds; 0 when network time was unavailable
}

// Deliverer sends readings to the configured endpoint.
type Deliverer interface {
	// Deliver sends one reading. Any error means the reading was not
	// accepted; the node logs it and moves on — the next scheduled wake
	// simply tries again.
	Deliver(r Reading) error

	// Close releases the transport.
	Close() error
}

// Payload is the wire structure for a reading.
type Payload struct {
	Soil SoilPayload `json:"soil"`
}

// SoilPayload carries the three numeric fields every endpoint gets.
type SoilPayload struct {
	Raw       int     `json:"raw"`
	Moisture  float64 `json:"moisture_percent"`
	Timestamp int64   `json:"timestamp"`
}

// FormatPayload creates the JSON payload for a reading.
func FormatPayload(r Reading) ([]byte, error) {
	payload := Payload{
		Soil: SoilPayload{
			Raw:       r.Raw,
			Moisture:  r.Percent,
			Timestamp: r.Timestamp,
		},
	}
	return json.Marshal(payload)
}
