// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interfaces for Salted Challenge
// Response Authentication Mechanism (SCRAM) based hashing. For the
// corresponding implementation, check the adapter layer.
//
// The admin back-office access token is never stored or configured in
// plaintext. Instead, the configuration file carries its hash in the
// standard scram format and incoming tokens are verified against that
// hash. Only the hash generation and verification features are needed
// here; the challenge/response conversation halves of the SCRAM
// protocol family are not used, so no conversation interfaces are
// defined in this layer.
package scram

// Hasher represents the expectations from a SCRAM hasher
// implementation which for a specific underlying hash function (e.g.,
// SHA1 or SHA256) computes the storedKey and serverKey values whenever
// its Hash method is called with the relevant pass, salt, and iters
// arguments, representing password, random salt value, and hashing
// iterations count. A PBKDF2 algorithm is computed in order to slow
// down a dictionary attack as detailed in RFC 5802.
type Hasher interface {
	// Hash computes a hash string following the standard scram hash
	// format, so it can be stored and used later for authentication.
	//
	// The pass argument must be non-empty. The given password will be
	// normalized according to the SASLprep profile (defined by
	// RFC 4013) of the stringprep algorithm (which is defined by
	// RFC 3454) and any failure in that normalization returns an
	// error.
	//
	// The salt must contain a base64 encoding of the desired salt
	// bytes, otherwise, if an empty value is passed, a random salt
	// will be generated and used instead.
	// The iters must be at least equal to 4096. However, the RFC 7677
	// recommends to use 15000 or more.
	//
	// In absence of errors, a hashed string will be returned which
	// conforms to the following format.
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}

// Verifier represents the expectations from a SCRAM verifier
// implementation which checks a candidate password against a hash
// string in the format produced by the Hasher interface.
type Verifier interface {
	// Verify recomputes the hash of the pass candidate using the salt
	// and iterations count which are encoded in the stored hash string
	// and compares the outcome with the stored keys in constant time.
	// It returns true if they match. Malformed hash strings are
	// reported as errors, not as a mismatch.
	Verify(pass, hash string) (bool, error)
}
