// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notevault process lifecycle.
//
// It initializes the configured storage backend, runs its background workers
// until the context is cancelled and reports the final synchronization state.
package client
