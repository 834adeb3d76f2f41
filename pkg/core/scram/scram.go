// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interfaces for Salted Challenge
// Response Authentication Mechanism (SCRAM) hashes. For the
// corresponding implementation, check the adapter layer.
//
// The admin gate does not need the SCRAM conversation messages. It
// only needs to turn a secret into a hash string in the standard
// format (so the plaintext token does not have to be stored in the
// configuration file) and to check a presented token against such a
// stored hash. The Hasher interface covers both of them.
package scram

// Hasher represents the expectations from a SCRAM hasher implementation
// which for a specific underlying hash function (e.g., SHA1 or SHA256)
// computes the storedKey and serverKey values of a secret, given a
// salt and iterations count, using the PBKDF2 algorithm as detailed in
// RFC 5802.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for verification.
	//
	// The pass argument must be non-empty. The salt must contain a
	// base64 encoding of the desired salt bytes, otherwise, if an
	// empty value is passed, a random salt will be generated.
	// The iters must be at least equal to 4096.
	//
	// In absence of errors, a hashed string will be returned which
	// conforms to the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)

	// Verify reports if pass hashes to the given hash string, using
	// the salt and iterations count which are recorded in it.
	// A malformed hash, or a hash of another mechanism, results in
	// an error.
	Verify(hash, pass string) (bool, error)
}
