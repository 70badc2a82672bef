// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/momeni/dealerweb/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	for _, m := range []*scram.Mechanism{scram.SHA1(), scram.SHA256()} {
		h, err := m.Hash("s3cret-admin-token", "", 4096)
		require.NoError(t, err, "hashing with a random salt")

		ok, err := m.Verify("s3cret-admin-token", h)
		require.NoError(t, err, "verifying the hashed password")
		require.True(t, ok, "hashed password must verify")

		ok, err = m.Verify("s3cret-admin-token2", h)
		require.NoError(t, err, "verifying a wrong password")
		require.False(t, ok, "wrong password must not verify")
	}
}

func TestHashDeterministicWithFixedSalt(t *testing.T) {
	m := scram.SHA256()
	const salt = "c2FsdC1ieXRlcy1oZXJlLXNhbHQtYnl0ZXMtaGVyZQ=="
	h1, err := m.Hash("pass", salt, 4096)
	require.NoError(t, err)
	h2, err := m.Hash("pass", salt, 4096)
	require.NoError(t, err)
	require.Equal(t, h1, h2, "fixed salt must fix the hash string")
	require.True(
		t, strings.HasPrefix(h1, "SCRAM-SHA-256$4096:"),
		"unexpected hash format: %s", h1,
	)
}

func TestHashRejectsWeakParams(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", "", 4096)
	require.Error(t, err, "empty password must be rejected")
	_, err = m.Hash("pass", "", 4095)
	require.Error(t, err, "low iterations count must be rejected")
}

func TestVerifyMalformedHash(t *testing.T) {
	m := scram.SHA256()
	for _, h := range []string{
		"",
		"SCRAM-SHA-256",
		"SCRAM-SHA-1$4096:c2FsdA==$a:b", // mechanism mismatch
		"SCRAM-SHA-256$notanint:c2FsdA==$a:b",
		"SCRAM-SHA-256$4096:c2FsdA==$storedKeyOnly",
	} {
		_, err := m.Verify("pass", h)
		require.Error(t, err, "malformed hash: %q", h)
	}
}
