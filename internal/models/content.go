package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Affirmation struct {
	ID        string    `json:"id"`
	Text      string    `json:"texto"`
	Category  string    `json:"categoria"`
	Language  string    `json:"linguagem"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAffirmation is the payload accepted when creating an affirmation.
type NewAffirmation struct {
	Text     string `json:"texto" validate:"required|maxLen:500"`
	Category string `json:"categoria" validate:"required|maxLen:80"`
	Language string `json:"linguagem" validate:"required|maxLen:16"`
}

// FavoriteAffirmation is a favorite joined with its affirmation text.
type FavoriteAffirmation struct {
	ID            string    `json:"id"`
	AffirmationID string    `json:"affirmation_id"`
	Text          string    `json:"texto"`
	Category      string    `json:"categoria"`
	CreatedAt     time.Time `json:"created_at"`
}

type Profile struct {
	UserID              string    `json:"user_id"`
	Name                *string   `json:"name"`
	RelationshipStatus  *string   `json:"relationship_status"`
	IsReligious         *string   `json:"is_religious"`
	Signo               *string   `json:"signo"`
	RecentFeeling       *string   `json:"recent_feeling"`
	FeelingCause        *string   `json:"feeling_cause"`
	TimeDedication      *string   `json:"time_dedication"`
	StartGoal           *string   `json:"start_goal"`
	Categories          []string  `json:"categories"`
	Troubles            *string   `json:"troubles"`
	Avoidance           *string   `json:"avoidance"`
	Goals               *string   `json:"goals"`
	GoalsAvoidance      *string   `json:"goals_avoidance"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
}
