package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAirplane_Capacity(t *testing.T) {
	assert.Equal(t, 25, Airplane{Rows: 5, SeatsInRow: 5}.Capacity())
	assert.Equal(t, 180, Airplane{Rows: 30, SeatsInRow: 6}.Capacity())
	assert.Equal(t, 1, Airplane{Rows: 1, SeatsInRow: 1}.Capacity())
}

func TestAirplane_SeatWithinRange(t *testing.T) {
	a := Airplane{Rows: 5, SeatsInRow: 5}

	assert.True(t, a.SeatWithinRange(1, 1))
	assert.True(t, a.SeatWithinRange(5, 5))
	assert.False(t, a.SeatWithinRange(0, 1))
	assert.False(t, a.SeatWithinRange(1, 0))
	assert.False(t, a.SeatWithinRange(6, 1))
	assert.False(t, a.SeatWithinRange(1, 6))
}
