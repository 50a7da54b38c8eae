package model

import (
	"strings"
	"time"
)

// NotificationFrequency controls how often a contact is notified about
// regulatory updates.
type NotificationFrequency string

const (
	FrequencyRealtime NotificationFrequency = "realtime"
	FrequencyDaily    NotificationFrequency = "daily"
	FrequencyWeekly   NotificationFrequency = "weekly"
)

// ParseNotificationFrequency maps a case-insensitive string onto the
// frequency enum. Unknown values return ("", false).
func ParseNotificationFrequency(s string) (NotificationFrequency, bool) {
	switch NotificationFrequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyRealtime:
		return FrequencyRealtime, true
	case FrequencyDaily:
		return FrequencyDaily, true
	case FrequencyWeekly:
		return FrequencyWeekly, true
	}
	return "", false
}

// NotificationContact is a person who receives regulatory update
// notifications on behalf of a user account.
type NotificationContact struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id"`

	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	ChannelEmail bool `json:"channel_email"`
	ChannelSMS   bool `json:"channel_sms"`
	ChannelCalls bool `json:"channel_calls"`

	Frequency      NotificationFrequency `json:"frequency"`
	HighImpactOnly bool                  `json:"high_impact_only"`
	IsActive       bool                  `json:"is_active"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ContactUpdate carries a partial update. Nil fields are left unchanged.
type ContactUpdate struct {
	Name           *string                `json:"name"`
	Role           *string                `json:"role"`
	Email          *string                `json:"email"`
	Phone          *string                `json:"phone"`
	ChannelEmail   *bool                  `json:"channel_email"`
	ChannelSMS     *bool                  `json:"channel_sms"`
	ChannelCalls   *bool                  `json:"channel_calls"`
	Frequency      *NotificationFrequency `json:"frequency"`
	HighImpactOnly *bool                  `json:"high_impact_only"`
	IsActive       *bool                  `json:"is_active"`
}

// IsEmpty reports whether the update changes nothing.
func (u ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Role == nil && u.Email == nil && u.Phone == nil &&
		u.ChannelEmail == nil && u.ChannelSMS == nil && u.ChannelCalls == nil &&
		u.Frequency == nil && u.HighImpactOnly == nil && u.IsActive == nil
}

// Apply copies the set fields onto the contact.
func (u ContactUpdate) Apply(c *NotificationContact) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Role != nil {
		c.Role = *u.Role
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.ChannelEmail != nil {
		c.ChannelEmail = *u.ChannelEmail
	}
	if u.ChannelSMS != nil {
		c.ChannelSMS = *u.ChannelSMS
	}
	if u.ChannelCalls != nil {
		c.ChannelCalls = *u.ChannelCalls
	}
	if u.Frequency != nil {
		c.Frequency = *u.Frequency
	}
	if u.HighImpactOnly != nil {
		c.HighImpactOnly = *u.HighImpactOnly
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}
