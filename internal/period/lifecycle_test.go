package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusDraft, StatusCalculated, true},
		{StatusCalculated, StatusCalculated, true},
		{StatusCalculated, StatusApproved, true},
		{StatusApproved, StatusPaid, true},

		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusPaid, false},
		{StatusCalculated, StatusPaid, false},
		{StatusApproved, StatusCalculated, false},
		{StatusApproved, StatusDraft, false},
		{StatusPaid, StatusApproved, false},
		{StatusPaid, StatusDraft, false},
		{StatusPaid, StatusPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanCompute(t *testing.T) {
	assert.True(t, CanCompute(StatusDraft))
	assert.True(t, CanCompute(StatusCalculated))
	assert.False(t, CanCompute(StatusApproved))
	assert.False(t, CanCompute(StatusPaid))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(StatusDraft))
	assert.True(t, CanDelete(StatusCalculated))
	assert.False(t, CanDelete(StatusApproved))
	assert.False(t, CanDelete(StatusPaid))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusCalculated, StatusApproved, StatusPaid} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("ARCHIVED"))
	assert.False(t, ValidStatus(""))
}
