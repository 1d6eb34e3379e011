package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/rcarcasses/challenge-biosignal/hrlog"
)

// Subscriber reads RR records off an MQTT topic and forwards them to the
// Records channel. Payloads use the log record format, a JSON object with
// "ts" and "rr"; a payload without a timestamp is stamped with the server
// receive time. Cleaning stays downstream, so records with empty RR lists
// pass through.
type Subscriber struct {
	client mqtt.Client
	topic  string

	Records chan hrlog.Record
}

// NewSubscriber wires a subscriber for the given RR topic, e.g. "hrm/+/rr".
func NewSubscriber(client mqtt.Client, topic string, buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = 256
	}
	return &Subscriber{
		client:  client,
		topic:   topic,
		Records: make(chan hrlog.Record, buffer),
	}
}

// Subscribe attaches the record handler to the topic at QoS 1.
func (s *Subscriber) Subscribe() error {
	token := s.client.Subscribe(s.topic, 1, s.handleRecord)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", s.topic, token.Error())
	}
	log.Printf("Subscribed to RR topic: %s", s.topic)
	return nil
}

func (s *Subscriber) handleRecord(client mqtt.Client, msg mqtt.Message) {
	var rec hrlog.Record
	if err := json.Unmarshal(msg.Payload(), &rec); err != nil {
		log.Printf("Dropping unparsable RR payload on %s: %v", msg.Topic(), err)
		return
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = float64(time.Now().UnixMilli()) / 1000.0
	}

	select {
	case s.Records <- rec:
	case <-time.After(time.Second):
		log.Printf("Record channel full, dropping message from %s", msg.Topic())
	}
}
