package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLostItemStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from LostItemStatus
		to   LostItemStatus
		want bool
	}{
		{ItemFound, ItemClaimed, true},
		{ItemFound, ItemSuspended, true},
		{ItemLost, ItemArchived, true},
		{ItemSuspended, ItemClaimed, true},
		{ItemClaimed, ItemArchived, true},
		{ItemClaimed, ItemFound, false},
		{ItemArchived, ItemClaimed, false},
		{ItemArchived, ItemClosed, true},
		{ItemClosed, ItemArchived, false},
		{ItemClosed, ItemClosed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBaggageIdentification(t *testing.T) {
	id, err := BaggageIdentification{Type: "22", Color: "bk", Material: "d", Element: "w"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "[BT:22 CL:BK MT:D EE:W]", id.Annotation())
	assert.Equal(t, "BLACK DUAL SOFT/HARD UPRIGHT DESIGN WITH WHEELS", id.Describe())

	partial := BaggageIdentification{Color: "RD"}
	assert.Equal(t, "[CL:RD]", partial.Annotation())

	assert.True(t, BaggageIdentification{}.IsEmpty())
	assert.Equal(t, "", BaggageIdentification{}.Annotation())

	_, err = BaggageIdentification{Color: "ZZ"}.Normalize()
	assert.ErrorIs(t, err, ErrUnknownCode)
}
