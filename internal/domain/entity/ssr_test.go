package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupService(t *testing.T) {
	def, ok := LookupService("xbag")
	assert.True(t, ok)
	assert.Equal(t, "XBAG", def.Code)
	assert.True(t, def.AddsBag)

	def, ok = LookupService("XWGT-KG12")
	assert.True(t, ok)
	assert.Equal(t, Units(36), def.Price)
	assert.Equal(t, "EXCESS WEIGHT 12KG", def.Description)

	_, ok = LookupService("XWGT-KG0")
	assert.False(t, ok)
	_, ok = LookupService("XWGT-KGA")
	assert.False(t, ok)
	_, ok = LookupService("ZZZZ")
	assert.False(t, ok)
}

func TestLookupService_ExcessWeightBounds(t *testing.T) {
	def, ok := LookupService("XWGT-KG999")
	assert.True(t, ok)
	assert.Equal(t, Units(2997), def.Price)
	assert.True(t, def.Price > 0)

	for _, code := range []string{
		"XWGT-KG1000",
		"XWGT-KG40000000000000000",
		"XWGT-KG+5",
		"XWGT-KG-5",
		"XWGT-KG 5",
		"XWGT-KG",
		"XWGT-KG000",
	} {
		_, ok := LookupService(code)
		assert.False(t, ok, code)
	}
}

func TestServiceRequest_AppliesToPassenger(t *testing.T) {
	second := 1
	all := ServiceRequest{}
	targeted := ServiceRequest{PassengerIndex: &second}

	assert.True(t, all.AppliesToPassenger(0))
	assert.False(t, targeted.AppliesToPassenger(0))
	assert.True(t, targeted.AppliesToPassenger(1))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "45.40", Money(4540).String())
	assert.Equal(t, "-1.05", Money(-105).String())
}
