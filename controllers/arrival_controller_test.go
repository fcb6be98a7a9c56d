package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrivalPayloadToModel(t *testing.T) {
	dep := "2025-06-20"
	arrival, msg := arrivalPayload{
		TouristID:     7,
		ArrivalDate:   "2025-06-15",
		DepartureDate: &dep,
		EntryPoint:    "Tashkent Airport",
		Purpose:       " Leisure ",
		GroupSize:     3,
	}.toModel()

	assert.Empty(t, msg)
	assert.Equal(t, uint(7), arrival.TouristID)
	assert.Equal(t, "leisure", arrival.Purpose)
	assert.Equal(t, 3, arrival.GroupSize)
	assert.NotNil(t, arrival.DepartureDate)
	assert.True(t, arrival.DepartureDate.After(arrival.ArrivalDate))
}

func TestArrivalPayloadDefaults(t *testing.T) {
	arrival, msg := arrivalPayload{
		TouristID:   1,
		ArrivalDate: "2025-06-15",
		EntryPoint:  "Termez border crossing",
	}.toModel()

	assert.Empty(t, msg)
	assert.Equal(t, 1, arrival.GroupSize)
	assert.Equal(t, "leisure", arrival.Purpose)
	assert.Nil(t, arrival.DepartureDate)
}

func TestArrivalPayloadRejectsBadDates(t *testing.T) {
	_, msg := arrivalPayload{TouristID: 1, ArrivalDate: "15.06.2025", EntryPoint: "x"}.toModel()
	assert.Equal(t, "arrival_date must be YYYY-MM-DD", msg)

	dep := "2025-06-10"
	_, msg = arrivalPayload{TouristID: 1, ArrivalDate: "2025-06-15", DepartureDate: &dep, EntryPoint: "x"}.toModel()
	assert.Equal(t, "departure_date must not precede arrival_date", msg)
}
