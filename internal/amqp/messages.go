package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// TransactionSyncMessage asks the export worker to mirror one transaction
// to the spreadsheet ledger. Only the ID and version travel on the wire;
// the worker fetches the full row from the database, so a delayed message
// never carries stale data.
type TransactionSyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func newTransactionSyncMessage(id, version int64) TransactionSyncMessage {
	return TransactionSyncMessage{ID: id, Version: version, Timestamp: time.Now()}
}

// Encode renders the message body for publishing.
func (m TransactionSyncMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func decodeTransactionSyncMessage(body []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("decode sync message: %w", err)
	}
	return &msg, nil
}
