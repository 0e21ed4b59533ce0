package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonthName(t *testing.T) {
	cases := []struct {
		input string
		want  time.Month
	}{
		{"January", time.January},
		{"june", time.June},
		{"JUNE", time.June},
		{"Jun", time.June},
		{" December ", time.December},
		{"sep", time.September},
		{"MAY", time.May},
	}
	for _, c := range cases {
		got, err := ParseMonthName(c.input)
		assert.NoError(t, err, c.input)
		assert.Equal(t, c.want, got, c.input)
	}
}

func TestParseMonthName_Invalid(t *testing.T) {
	for _, input := range []string{"", "Juneteenth", "13", "Sept", "janvier"} {
		_, err := ParseMonthName(input)
		assert.ErrorIs(t, err, ErrInvalidMonthName, input)
	}
}
