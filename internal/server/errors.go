// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means the control API has no router or no listen
// address, so there is nothing for the sync daemon to serve.
var errNoServersAreCreated = errors.New("control API is not configured: handlers or listen address missing")
