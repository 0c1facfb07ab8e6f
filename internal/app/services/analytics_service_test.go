package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultEventClassifier(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Go Workshop 2026", "Workshop"},
		{"Research SEMINAR", "Seminar"},
		{"Annual Tech Conference", "Conference"},
		{"Club Meeting", "Meeting"},
		{"Safety Training", "Training"},
		{"Coding Competition", "Competition"},
		{"Chess Contest", "Competition"},
		{"Social Mixer", "Social"},
		{"End of Term Party", "Social"},
		{"Sports Day", "Sports"},
		{"Game Night", "Sports"},
		{"Study Session", "Session"},
		{"UI Design Sprint", "Design"},
		{"DSA Bootcamp", "Technical"},
		{"Untitled", "Other"},
		{"", "Other"},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, DefaultEventClassifier(tc.title))
		})
	}
}

// The first matching keyword wins, so a title hitting several buckets is
// classified by the highest-priority one.
func TestDefaultEventClassifier_FirstMatchWins(t *testing.T) {
	assert.Equal(t, "Workshop", DefaultEventClassifier("Design Workshop Session"))
	assert.Equal(t, "Seminar", DefaultEventClassifier("Seminar on Game Design"))
}

func TestRoundOne(t *testing.T) {
	assert.Equal(t, 33.3, roundOne(33.333333))
	assert.Equal(t, 66.7, roundOne(66.666666))
	assert.Equal(t, 50.0, roundOne(50))
	assert.Equal(t, 0.0, roundOne(0))
}
