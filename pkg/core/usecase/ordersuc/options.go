// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ordersuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the orders use case.
type Option func(uc *UseCase) error

// WithNumberPrefix option configures the human-readable order number
// prefix (by default ORD-). This option may be passed to the New()
// function.
func WithNumberPrefix(prefix string) Option {
	return func(uc *UseCase) error {
		if prefix == "" {
			return errors.New("prefix may not be empty")
		}
		if uc.numberPrefix != "" {
			return errors.New("prefix is already configured")
		}
		uc.numberPrefix = prefix
		return nil
	}
}

// WithNumberBase option configures the base which is added to the
// atomic counter value when forming order numbers (by default 1000),
// keeping new numbers in the range of the pre-existing records.
// This option may be passed to the New() function.
func WithNumberBase(base int64) Option {
	return func(uc *UseCase) error {
		if base <= 0 {
			return fmt.Errorf("base (%d) is not positive", base)
		}
		if uc.numberBase != 0 {
			return errors.New("base is already configured")
		}
		uc.numberBase = base
		return nil
	}
}
