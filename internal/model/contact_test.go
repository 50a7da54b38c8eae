package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNotificationFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want NotificationFrequency
		ok   bool
	}{
		{"realtime", FrequencyRealtime, true},
		{"daily", FrequencyDaily, true},
		{"weekly", FrequencyWeekly, true},
		{"WEEKLY", FrequencyWeekly, true},
		{"  daily  ", FrequencyDaily, true},
		{"hourly", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseNotificationFrequency(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestContactUpdate_IsEmpty(t *testing.T) {
	assert.True(t, ContactUpdate{}.IsEmpty())

	name := "Dana"
	assert.False(t, ContactUpdate{Name: &name}.IsEmpty())

	active := false
	assert.False(t, ContactUpdate{IsActive: &active}.IsEmpty())
}

func TestContactUpdate_Apply(t *testing.T) {
	contact := NotificationContact{
		UserID:       "u-1",
		Name:         "Dana",
		Email:        "dana@example.com",
		ChannelEmail: true,
		Frequency:    FrequencyDaily,
		IsActive:     true,
	}

	phone := "+49 30 1234"
	freq := FrequencyRealtime
	active := false
	update := ContactUpdate{
		Phone:     &phone,
		Frequency: &freq,
		IsActive:  &active,
	}
	update.Apply(&contact)

	assert.Equal(t, "+49 30 1234", contact.Phone)
	assert.Equal(t, FrequencyRealtime, contact.Frequency)
	assert.False(t, contact.IsActive)

	// Unset fields stay untouched.
	assert.Equal(t, "Dana", contact.Name)
	assert.Equal(t, "dana@example.com", contact.Email)
	assert.True(t, contact.ChannelEmail)
}
