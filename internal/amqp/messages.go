package amqp

import (
	"encoding/json"
	"time"
)

const (
	OpUpsert = "upsert"
	OpRemove = "remove"
	OpExport = "export"
)

// RecordEventMessage announces a record mutation (or an export request) to the
// report worker. It carries only the id and operation; the worker reads the
// record itself from the snapshot.
type RecordEventMessage struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEventMessage(op, id string) *RecordEventMessage {
	return &RecordEventMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *RecordEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordEventMessageFromJSON(data []byte) (*RecordEventMessage, error) {
	var msg RecordEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
