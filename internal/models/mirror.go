package models

import "time"

// FeedFrame is one encoded record travelling from a mirror driver to the MQTT publisher
type FeedFrame struct {
	Feed      string    `json:"feed"`
	Timestamp time.Time `json:"timestamp"`
	Payload   []byte    `json:"-"` // JSON-encoded record
}
