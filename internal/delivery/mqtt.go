package delivery

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Topic is the MQTT topic readings are published to.
const Topic = "garden/soil/readings"

// MQTTDeliverer publishes readings to an MQTT broker.
type MQTTDeliverer struct {
	client paho.Client
	topic  string
}

// NewMQTTDeliverer creates a deliverer connected to the given broker. The
// connect wait is bounded; a node that cannot reach its broker must still
// make it back to sleep.
func NewMQTTDeliverer(broker, clientID string) (*MQTTDeliverer, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectRetry(false)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &MQTTDeliverer{client: client, topic: Topic}, nil
}

// Deliver publishes one reading.
// QoS 1 (at-least-once): the node sleeps right after and cannot notice a
// silently dropped QoS 0 message.
func (d *MQTTDeliverer) Deliver(r Reading) error {
	payload, err := FormatPayload(r)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := d.client.Publish(d.topic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// Close disconnects from the broker.
func (d *MQTTDeliverer) Close() error {
	d.client.Disconnect(1000) // 1 second timeout
	return nil
}
