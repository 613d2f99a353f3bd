package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/scoop/goquery"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05T10:00:00+02:00", time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"March 5, 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"Published: 5 March 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"Tue, 05 Mar 2024 10:00:00 GMT", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := goquery.ParseDate(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.ParseDate("yesterday afternoon")
		assert.False(t, ok)
	})
}

func TestFindDate(t *testing.T) {
	t.Parallel()

	got, ok := goquery.FindDate("Breaking news. Updated 2 hours ago. Filed 12 Feb 2024 by our correspondent.")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), got)

	_, ok = goquery.FindDate("no dates in here")
	assert.False(t, ok)
}
