// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo lists the persistence interfaces which the use cases
// depend on. Implementations live in the adapter layer, so use cases
// can be tested with fake repositories and the database technology
// may change without touching them.
package repo

import "context"

// ConnHandler is called with an acquired connection. The connection
// is released after the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool which may be shared by
// all requests concurrently.
type Pool interface {
	// Conn acquires a connection, passes it to handler, and releases
	// it afterwards. Errors of handler are returned as is.
	Conn(ctx context.Context, handler ConnHandler) error
}
