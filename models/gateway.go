package models

import (
	"encoding/json"
	"time"
)

// GetResponse is the envelope returned by every GET endpoint of the remote API.
type GetResponse struct {
	Status bool    `json:"status"`
	Data   GetData `json:"data"`
}

// GetData carries the listing or detail body together with the permission
// flags the server evaluated for the caller.
type GetData struct {
	Data        json.RawMessage `json:"data"`
	Permissions Permissions     `json:"permissions"`
}

// PostResponse is the envelope returned by every POST endpoint.
type PostResponse struct {
	Status bool     `json:"status"`
	Data   PostData `json:"data"`
}

// PostData holds the application level status of a submitted payload.
type PostData struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Succeeded reports whether the server accepted the submission.
func (r PostResponse) Succeeded() bool {
	return r.Data.StatusCode == 200
}

// SyncModel is attached to every pushed payload.
type SyncModel struct {
	IsForceSync   bool    `json:"IsForceSync"`
	IsOfflineSync bool    `json:"IsOfflineSync"`
	UtcDate       string  `json:"UtcDate"`
	CorrelationID string  `json:"CorrelationId"`
	ContentItemID *string `json:"ContentItemId"`
	Fallback      any     `json:"Fallback"`
}

// RemoteRecord is the engine's view of a record received from the server.
// Raw keeps the full JSON object so that entity specific fields survive the
// round trip into the local payload column.
type RemoteRecord struct {
	ContentItemID     string
	ParentID          string
	TypeID            string
	DisplayText       string
	Category          string
	ModifiedUTC       time.Time
	IsEnableMultiline bool
	CorrelationID     string
	Permissions       Permissions
	Raw               json.RawMessage
}
