// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is called with an open transaction. The transaction is
// committed if the handler returns nil and rolled back otherwise.
type TxHandler func(context.Context, Tx) error

// Conn represents one database connection which runs each statement
// in its own auto-committed transaction, unless Tx is used.
// It is unsafe to be used concurrently.
type Conn interface {
	Queryer

	// Tx begins a transaction, runs handler, and then commits or
	// rolls back the transaction. A panicking handler is recovered
	// and reported as an error after the rollback.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
