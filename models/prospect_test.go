package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProspectStatusValid(t *testing.T) {
	for _, status := range []ProspectStatus{
		ProspectStatusNew,
		ProspectStatusContacted,
		ProspectStatusQualified,
		ProspectStatusConverted,
		ProspectStatusRejected,
	} {
		assert.True(t, status.Valid(), "%s should be valid", status)
	}

	assert.False(t, ProspectStatus("bogus").Valid())
	assert.False(t, ProspectStatus("").Valid())
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to ProspectStatus }{
		{ProspectStatusNew, ProspectStatusContacted},
		{ProspectStatusNew, ProspectStatusQualified},
		{ProspectStatusNew, ProspectStatusConverted},
		{ProspectStatusNew, ProspectStatusRejected},
		{ProspectStatusContacted, ProspectStatusQualified},
		{ProspectStatusContacted, ProspectStatusConverted},
		{ProspectStatusContacted, ProspectStatusRejected},
		{ProspectStatusQualified, ProspectStatusConverted},
		{ProspectStatusQualified, ProspectStatusRejected},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to ProspectStatus }{
		{ProspectStatusContacted, ProspectStatusNew},
		{ProspectStatusQualified, ProspectStatusContacted},
		{ProspectStatusConverted, ProspectStatusRejected},
		{ProspectStatusConverted, ProspectStatusNew},
		{ProspectStatusRejected, ProspectStatusContacted},
		{ProspectStatusRejected, ProspectStatusConverted},
		{ProspectStatusNew, ProspectStatus("bogus")},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestHasCoordinates(t *testing.T) {
	lat, lon := -6.2, 106.8

	assert.False(t, (&Prospect{}).HasCoordinates())
	assert.False(t, (&Prospect{Latitude: &lat}).HasCoordinates())
	assert.True(t, (&Prospect{Latitude: &lat, Longitude: &lon}).HasCoordinates())
}
