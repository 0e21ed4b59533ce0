package timeledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func closedExit(start, end time.Time) ExitInterval {
	mins := int(end.Sub(start) / time.Minute)
	if mins < 0 {
		mins = 0
	}
	return ExitInterval{StartTime: start, EndTime: &end, DurationMinutes: mins, Reason: "errand"}
}

func TestWorkedMinutes(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		exits    []ExitInterval
		want     int
	}{
		{
			name:     "no exits",
			checkIn:  day(9, 0),
			checkOut: day(18, 0),
			want:     540,
		},
		{
			name:     "single closed exit subtracted",
			checkIn:  day(9, 0),
			checkOut: day(19, 0),
			exits:    []ExitInterval{closedExit(day(13, 0), day(13, 30))},
			want:     570,
		},
		{
			name:     "multiple closed exits",
			checkIn:  day(8, 0),
			checkOut: day(18, 0),
			exits: []ExitInterval{
				closedExit(day(10, 0), day(10, 15)),
				closedExit(day(14, 0), day(14, 45)),
			},
			want: 540,
		},
		{
			name:     "open exit ignored in finalized computation",
			checkIn:  day(9, 0),
			checkOut: day(18, 0),
			exits:    []ExitInterval{{StartTime: day(13, 0), Reason: "errand"}},
			want:     540,
		},
		{
			name:     "exits exceeding span floor at zero",
			checkIn:  day(9, 0),
			checkOut: day(9, 30),
			exits:    []ExitInterval{closedExit(day(9, 0), day(11, 0))},
			want:     0,
		},
		{
			name:     "inverted span floors at zero",
			checkIn:  day(18, 0),
			checkOut: day(9, 0),
			want:     0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorkedMinutes(c.checkIn, c.checkOut, c.exits))
		})
	}
}

func TestTotals(t *testing.T) {
	cases := []struct {
		name         string
		checkOut     time.Time
		standard     int
		wantTotal    int
		wantOvertime int
		wantComplete bool
	}{
		{"exactly standard", day(18, 0), 540, 540, 0, true},
		{"overtime", day(19, 30), 540, 630, 90, true},
		{"under standard", day(15, 0), 540, 360, 0, false},
		{"custom standard", day(17, 0), 480, 480, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			total, overtime, complete := Totals(day(9, 0), c.checkOut, nil, c.standard)
			assert.Equal(t, c.wantTotal, total)
			assert.Equal(t, c.wantOvertime, overtime)
			assert.Equal(t, c.wantComplete, complete)
		})
	}
}

func TestLiveTotals(t *testing.T) {
	t.Run("in-progress day uses now as stand-in", func(t *testing.T) {
		checkIn := day(9, 0)
		e := &Entry{CheckIn: &checkIn, Exits: []ExitInterval{closedExit(day(12, 0), day(12, 30))}}

		total, overtime, complete := LiveTotals(e, day(14, 0), 540)
		assert.Equal(t, 270, total)
		assert.Equal(t, 0, overtime)
		assert.False(t, complete)
	})

	t.Run("open exit stops the live clock at its start", func(t *testing.T) {
		checkIn := day(9, 0)
		e := &Entry{CheckIn: &checkIn, Exits: []ExitInterval{{StartTime: day(13, 0), Reason: "errand"}}}

		total, _, _ := LiveTotals(e, day(15, 0), 540)
		assert.Equal(t, 240, total)
	})

	t.Run("no check-in yields zero", func(t *testing.T) {
		total, overtime, complete := LiveTotals(&Entry{}, day(12, 0), 540)
		assert.Zero(t, total)
		assert.Zero(t, overtime)
		assert.False(t, complete)
	})
}
