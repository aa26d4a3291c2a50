// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncState is the coarse state of the synchronization engine.
type SyncState string

const (
	SyncStateIdle    SyncState = "idle"
	SyncStateSyncing SyncState = "syncing"
	SyncStateOffline SyncState = "offline"
	SyncStateError   SyncState = "error"
)

// InitResolution records how local and remote vaults were reconciled at
// startup.
type InitResolution string

const (
	InitRemoteApplied  InitResolution = "remote_applied"
	InitLocalPushed    InitResolution = "local_pushed"
	InitCreatedDefault InitResolution = "created_default"
)

// SyncStatus is the persisted synchronization status. It survives restarts
// so a reloaded client shows the real backlog instead of "idle".
type SyncStatus struct {
	State              SyncState       `json:"state"`
	PendingCount       int             `json:"pendingCount"`
	LastSuccessAt      *time.Time      `json:"lastSuccessAt"`
	LastError          *string         `json:"lastError"`
	LastInitResolution *InitResolution `json:"lastInitResolution"`
}

// DefaultSyncStatus is the status of an engine that never ran.
func DefaultSyncStatus() SyncStatus {
	return SyncStatus{State: SyncStateIdle}
}
