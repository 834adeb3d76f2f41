// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram hashes admin tokens into the standard SCRAM stored
// credentials format and verifies presented tokens against such hash
// strings, using the github.com/xdg-go/scram module.
// A hash string looks like
//
//	SCRAM-SHA-256${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// and consists of printable ASCII letters only, so it may be kept in a
// YAML configuration file instead of the plaintext token.
package scram

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// MinIterations is the least PBKDF2 iterations count which is
// accepted by Hash, as required by RFC 5802. RFC 7677 recommends
// 15000 or more.
const MinIterations = 4096

var b64 = base64.StdEncoding

// Mechanism is a SCRAM variant with a fixed underlying hash function.
// It implements the pkg/core/scram.Hasher interface.
type Mechanism struct {
	name    string
	gen     scram.HashGeneratorFcn
	saltLen int
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{name: "SCRAM-SHA-1", gen: scram.SHA1, saltLen: 20}
}

// SHA256 returns the SCRAM-SHA-256 mechanism.
func SHA256() *Mechanism {
	return &Mechanism{name: "SCRAM-SHA-256", gen: scram.SHA256, saltLen: 32}
}

// ForHash returns the mechanism which has produced the hash string,
// based on its name prefix.
func ForHash(hash string) (*Mechanism, error) {
	name, _, _ := strings.Cut(hash, "$")
	for _, m := range []*Mechanism{SHA256(), SHA1()} {
		if m.name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown scram mechanism: %q", name)
}

// hashString holds the parts of a hash string.
type hashString struct {
	name      string
	iters     int
	salt      string // base64
	storedKey string // base64
	serverKey string // base64
}

func (h hashString) String() string {
	return fmt.Sprintf("%s$%d:%s$%s:%s",
		h.name, h.iters, h.salt, h.storedKey, h.serverKey,
	)
}

func parseHash(s string) (hashString, error) {
	var h hashString
	parts := strings.Split(s, "$")
	if len(parts) != 3 {
		return h, errors.New("expected three $ separated parts")
	}
	h.name = parts[0]
	iters, salt, ok := strings.Cut(parts[1], ":")
	if !ok || salt == "" {
		return h, errors.New("missing salt")
	}
	n, err := strconv.Atoi(iters)
	if err != nil {
		return h, fmt.Errorf("parsing iterations count: %w", err)
	}
	h.iters, h.salt = n, salt
	h.storedKey, h.serverKey, ok = strings.Cut(parts[2], ":")
	if !ok {
		return h, errors.New("missing server key")
	}
	return h, nil
}

// Hash computes the hash string of the non-empty pass. The salt must be
// the base64 encoding of the salt bytes. An empty salt is replaced by a
// random one. The pass is normalized with the SASLprep profile
// (RFC 4013) and normalization failures are reported.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < MinIterations:
		return "", fmt.Errorf("iters (%d) is less than %d", iters, MinIterations)
	}
	if salt == "" {
		raw := make([]byte, m.saltLen)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = b64.EncodeToString(raw)
	}
	raw, err := b64.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	// The user name and authzID do not affect the stored credentials.
	c, err := m.gen.NewClient("admin", pass, "")
	if err != nil {
		return "", fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(raw),
		Iters: iters,
	})
	return hashString{
		name:      m.name,
		iters:     iters,
		salt:      salt,
		storedKey: b64.EncodeToString(sc.StoredKey),
		serverKey: b64.EncodeToString(sc.ServerKey),
	}.String(), nil
}

// Verify reports if pass hashes to the hash string, reusing its salt
// and iterations count. Hash strings are compared in constant time.
// A malformed hash, or a hash of another mechanism, is an error.
func (m *Mechanism) Verify(hash, pass string) (bool, error) {
	h, err := parseHash(hash)
	if err != nil {
		return false, err
	}
	if h.name != m.name {
		return false, fmt.Errorf("not a %s hash", m.name)
	}
	if pass == "" {
		return false, nil
	}
	got, err := m.Hash(pass, h.salt, h.iters)
	if err != nil {
		return false, fmt.Errorf("hashing: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1, nil
}
