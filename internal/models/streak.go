package models

// StreakRecord is the persisted consecutive-day activity state of one user.
type StreakRecord struct {
	CurrentStreak    int  `json:"current_streak"`
	LongestStreak    int  `json:"longest_streak"`
	LastActivityDate Date `json:"last_activity_date"`
}

// NotificationPreferences configures how many reminders a user receives and when.
type NotificationPreferences struct {
	PerDay    int       `json:"per_day"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`
}

func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		PerDay:    10,
		StartTime: TimeOfDay{Hour: 8},
		EndTime:   TimeOfDay{Hour: 21},
	}
}

type PushToken struct {
	UserID   string `json:"user_id"`
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
