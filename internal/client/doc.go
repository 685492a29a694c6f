// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the fieldsync command line application.
//
// It wires configuration, the local cache, the remote gateway and the sync
// services into cobra commands: one-shot pull and push runs (optionally with
// a progress view), the pending and history listings, force sync of a single
// record and the long-running control API server.
package client
