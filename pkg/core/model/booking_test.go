// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusReleasesHold(t *testing.T) {
	for s, want := range map[model.BookingStatus]bool{
		model.BookingNew:       false,
		model.BookingConfirmed: false,
		model.BookingCompleted: true,
		model.BookingCancelled: true,
	} {
		assert.Equal(
			t, want, s.ReleasesHold(), "ReleasesHold of %s", s,
		)
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []model.BookingStatus{
		model.BookingNew,
		model.BookingConfirmed,
		model.BookingCompleted,
		model.BookingCancelled,
	} {
		parsed, err := model.ParseBookingStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := model.ParseBookingStatus("done")
	assert.ErrorIs(t, err, model.ErrUnknownBookingStatus)
	assert.Error(t, model.BookingStatusInvalid.Validate())
}
