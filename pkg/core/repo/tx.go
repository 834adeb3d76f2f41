// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a database transaction which is obtained from a Conn.
// It is unsafe to be used concurrently.
// Request handling use cases run exactly one statement per request
// and need no transaction. Tx is used where several statements must
// succeed or fail together, such as creating the tables of a catalog
// and inserting their sample rows.
// A READ-COMMITTED transaction is expected from the PostgreSQL server.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
