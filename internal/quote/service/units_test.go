package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvrobbi/promusic/internal/quote/domain"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

func TestUnitsForPer30s(t *testing.T) {
	cases := []struct {
		duration int
		units    int
	}{
		{15, 1},
		{29, 1},
		{30, 1},
		{31, 2},
		{45, 2},
		{60, 2},
		{61, 3},
		{90, 3},
	}
	for _, tc := range cases {
		units, err := unitsFor(domain.LineItem{DurationSeconds: tc.duration}, ratecard.UnitPer30s)
		require.NoError(t, err)
		assert.Equal(t, tc.units, units, "duration %ds", tc.duration)
	}
}

func TestUnitsForInvalidDuration(t *testing.T) {
	for _, d := range []int{0, -10} {
		_, err := unitsFor(domain.LineItem{DurationSeconds: d}, ratecard.UnitPer30s)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	}
}

func TestUnitsForNonBroadcastIgnoresDuration(t *testing.T) {
	for _, ut := range []ratecard.UnitType{
		ratecard.UnitPerTrack, ratecard.UnitFlatFee,
		ratecard.UnitPerEpisode, ratecard.UnitPerUnit,
	} {
		units, err := unitsFor(domain.LineItem{DurationSeconds: 0}, ut)
		require.NoError(t, err)
		assert.Equal(t, 1, units)
	}
}
