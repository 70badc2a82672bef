// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram presents an implementation of SCRAM-SHA-256 and
// SCRAM-SHA-1 mechanisms. See the SHA256 and SHA1 functions for their
// instantiation logic. When a mechanism for a specific underlying hash
// function is instantiated, it can be used for generation of hash
// strings in the SCRAM standard format and for verification of
// candidate passwords against such hash strings.
// This format is also known as the scram encrypted password format,
// however, it may not be reversed (so no encryption/decryption is
// taking place).
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

// Mechanism provides a Salted Challenge Response Authentication
// Mechanism (SCRAM) having a fixed underlying hash algorithm.
//
// It implements the core layer scram.Hasher and scram.Verifier
// interfaces, so it may be used in the use cases layer without any
// dependency on the actual implementation. This package relies on
// the github.com/xdg-go/scram module for the SCRAM implementation.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	outLen        int // bytes
	name          string
}

// SHA1 returns a new Mechanism instance using the SHA1 as its
// underlying hash algorithm.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		outLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a new Mechanism instance using the SHA256 as its
// underlying hash algorithm.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		outLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// Hash computes a hash string following the standard scram hash format,
// so it can be stored and used later for authentication.
//
// The pass argument must be non-empty. The user and authzID params
// are not asked because they are not used in the hash output. The
// given password will be normalized accoriding to the SASLprep
// profile (defined by RFC 4013) of the stringprep algorithm (which
// is defined by RFC 3454) and any failure in that normalization
// returns an error.
//
// The salt must contain a base64 encoding of the desired salt
// bytes, otherwise, if an empty value is passed, a random salt will
// be generated and used instead.
// The iters must be at least equal to 4096. However, the RFC 7677
// recommends to use 15000 or more.
//
// In absence of errors, a hashed string will be returned which
// conforms to the following format.
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// This string (consisting only of ASCII printable letters) can be
// safely kept in a configuration file, while the password itself is
// never stored anywhere.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < 4096:
		return "", fmt.Errorf("iters (%d) is less than 4096", iters)
	}
	if salt == "" {
		saltBytes := make([]byte, m.outLen)
		if _, err := rand.Read(saltBytes); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		s := make([]byte, base64.StdEncoding.EncodedLen(m.outLen))
		base64.StdEncoding.Encode(s, saltBytes)
		salt = string(s)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return "", fmt.Errorf("obtaining stored credentials: %w", err)
	}
	h := fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name,
		iters, salt,
		base64.StdEncoding.EncodeToString(sc.StoredKey),
		base64.StdEncoding.EncodeToString(sc.ServerKey),
	)
	return h, nil
}

// Verify recomputes the stored and server keys of the pass candidate
// using the salt and iterations count which are encoded in the hash
// string and compares them with the encoded keys in constant time,
// returning true if both match. The hash must use this mechanism and
// follow the format produced by the Hash method, otherwise an error
// (and not a mismatch) is reported.
func (m *Mechanism) Verify(pass, hash string) (bool, error) {
	if pass == "" {
		return false, errors.New("password must be non-empty")
	}
	iters, salt, storedKey, serverKey, err := m.parse(hash)
	if err != nil {
		return false, fmt.Errorf("parsing hash: %w", err)
	}
	sc, err := m.storedCredentials(pass, salt, iters)
	if err != nil {
		return false, fmt.Errorf(
			"obtaining stored credentials: %w", err,
		)
	}
	ok := subtle.ConstantTimeCompare(sc.StoredKey, storedKey) &
		subtle.ConstantTimeCompare(sc.ServerKey, serverKey)
	return ok == 1, nil
}

func (m *Mechanism) parse(hash string) (
	iters int, salt string, storedKey, serverKey []byte, err error,
) {
	name, rest, found := strings.Cut(hash, "$")
	switch {
	case !found:
		return 0, "", nil, nil, errors.New("missing mechanism name")
	case name != m.name:
		return 0, "", nil, nil, fmt.Errorf(
			"mechanism mismatch: %q is not %q", name, m.name,
		)
	}
	itersStr, rest, found := strings.Cut(rest, ":")
	if !found {
		return 0, "", nil, nil, errors.New("missing iterations count")
	}
	iters, err = strconv.Atoi(itersStr)
	if err != nil {
		return 0, "", nil, nil, fmt.Errorf(
			"iterations count: %w", err,
		)
	}
	salt, rest, found = strings.Cut(rest, "$")
	if !found {
		return 0, "", nil, nil, errors.New("missing salt")
	}
	storedKeyStr, serverKeyStr, found := strings.Cut(rest, ":")
	if !found {
		return 0, "", nil, nil, errors.New("missing server key")
	}
	storedKey, err = base64.StdEncoding.DecodeString(storedKeyStr)
	if err != nil {
		return 0, "", nil, nil, fmt.Errorf(
			"decoding base64 stored key: %w", err,
		)
	}
	serverKey, err = base64.StdEncoding.DecodeString(serverKeyStr)
	if err != nil {
		return 0, "", nil, nil, fmt.Errorf(
			"decoding base64 server key: %w", err,
		)
	}
	return iters, salt, storedKey, serverKey, nil
}

func (m *Mechanism) storedCredentials(
	pass, salt string, iters int,
) (*scram.StoredCredentials, error) {
	c, err := m.hashGenerator.NewClient("username", pass, "authzID")
	if err != nil {
		return nil, fmt.Errorf("creating SCRAM client: %w", err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 salt: %w", err)
	}
	c = c.WithMinIterations(iters)
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(saltBytes),
		Iters: iters,
	})
	return &sc, nil
}
