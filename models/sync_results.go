package models

import (
	"fmt"
	"strings"
	"time"
)

// PullSummary aggregates what one pull cycle did.
type PullSummary struct {
	Created           int  `json:"created"`
	Updated           int  `json:"updated"`
	PermissionUpdates int  `json:"permissionUpdates"`
	Skipped           int  `json:"skipped"`
	Failed            int  `json:"failed"`
	Pruned            int  `json:"pruned"`
	Pages             int  `json:"pages"`
	SecondaryFailed   int  `json:"secondaryFailed"`
	Offline           bool `json:"offline"`
	Cancelled         bool `json:"cancelled"`
}

// Add folds another summary into s.
func (s *PullSummary) Add(o PullSummary) {
	s.Created += o.Created
	s.Updated += o.Updated
	s.PermissionUpdates += o.PermissionUpdates
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.Pruned += o.Pruned
	s.Pages += o.Pages
	s.SecondaryFailed += o.SecondaryFailed
	s.Offline = s.Offline || o.Offline
	s.Cancelled = s.Cancelled || o.Cancelled
}

// Message renders the summary shown to the user after a pull.
func (s PullSummary) Message() string {
	switch {
	case s.Offline:
		return "No internet connection, sync skipped"
	case s.Cancelled:
		return "Sync cancelled"
	}
	return fmt.Sprintf("Sync complete: %d new, %d updated, %d removed, %d failed",
		s.Created, s.Updated+s.PermissionUpdates, s.Pruned, s.Failed+s.SecondaryFailed)
}

// PushResult is the aggregate outcome of a push cycle.
type PushResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	Pushed  int      `json:"pushed"`
	Failed  int      `json:"failed"`
	Offline bool     `json:"offline"`
}

// Message renders the notice shown to the user after a push.
func (r PushResult) Message() string {
	switch {
	case r.Offline:
		return "No internet connection, push skipped"
	case r.Success:
		return fmt.Sprintf("Synced %d item(s)", r.Pushed)
	}
	return "Failed to sync: " + strings.Join(r.Errors, ", ")
}

// TaskResult is the outcome of one fanned-out secondary sync.
type TaskResult struct {
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
	Err      error  `json:"-"`
}

// HistoryEntry is one line of the append-only push audit trail.
type HistoryEntry struct {
	ID             string     `json:"id"`
	Kind           EntityKind `json:"kind"`
	ContentItemID  string     `json:"contentItemId"`
	OldDisplayText string     `json:"oldDisplayText"`
	NewDisplayText string     `json:"newDisplayText"`
	CorrelationID  string     `json:"correlationId"`
	IsForceSync    bool       `json:"isForceSync"`
	SyncedAt       time.Time  `json:"syncedAt"`
}

// SyncedArea is one dirty part of a logical item on the items-to-sync screen.
type SyncedArea struct {
	Area        EntityKind `json:"area"`
	Count       int        `json:"count"`
	IsForceSync bool       `json:"isForceSync"`
}

// PendingItem summarises every dirty row that belongs to one case or license.
type PendingItem struct {
	RootID       string       `json:"rootId"`
	RootKind     EntityKind   `json:"rootKind"`
	DisplayText  string       `json:"displayText"`
	Areas        []SyncedArea `json:"areas"`
	IsForceSync  bool         `json:"isForceSync"`
	LastModified time.Time    `json:"lastModified"`
}
