package models

// OnboardingResponses are the questionnaire answers collected before sign-up.
type OnboardingResponses struct {
	Name                  string   `json:"name,omitempty"`
	RelationshipStatus    string   `json:"relationshipStatus,omitempty"`
	IsReligious           string   `json:"isReligious,omitempty"`
	Signo                 string   `json:"signo,omitempty"`
	RecentFeeling         string   `json:"recentFeeling,omitempty"`
	FeelingCause          string   `json:"feelingCause,omitempty"`
	NotificationsPerDay   int      `json:"notificationsPerDay,omitempty"`
	NotificationStartTime string   `json:"notificationStartTime,omitempty"`
	NotificationEndTime   string   `json:"notificationEndTime,omitempty"`
	TimeDedication        string   `json:"timeDedication,omitempty"`
	StartGoal             string   `json:"startGoal,omitempty"`
	Categories            []string `json:"categories,omitempty"`
	Troubles              string   `json:"troubles,omitempty"`
	Avoidance             string   `json:"avoidance,omitempty"`
	Goals                 string   `json:"goals,omitempty"`
	GoalsAvoidance        string   `json:"goalsAvoidance,omitempty"`
}

// AnswerableFields is the number of free-answer questions counted towards completion.
const AnswerableFields = 12

// Answered counts non-empty answers among the answerable questions.
func (r OnboardingResponses) Answered() int {
	n := 0
	for _, v := range []string{
		r.Name, r.RelationshipStatus, r.IsReligious, r.Signo,
		r.RecentFeeling, r.FeelingCause, r.TimeDedication, r.StartGoal,
		r.Troubles, r.Avoidance, r.Goals, r.GoalsAvoidance,
	} {
		if v != "" {
			n++
		}
	}
	return n
}

type ThemeMode string

const (
	ThemeGentil ThemeMode = "gentil"
	ThemeSunset ThemeMode = "sunset"
	ThemeOcean  ThemeMode = "ocean"
)

type AnimationMode string

const (
	AnimationFade  AnimationMode = "fade"
	AnimationSlide AnimationMode = "slide"
	AnimationScale AnimationMode = "scale"
)

type AppPreferences struct {
	ThemeMode         ThemeMode     `json:"themeMode"`
	MainAnimationMode AnimationMode `json:"mainAnimationMode"`
	ShowCategoryTags  bool          `json:"showCategoryTags"`
}

// AppPreferencesPatch carries only the fields a client wants to change.
type AppPreferencesPatch struct {
	ThemeMode         *string `json:"themeMode"`
	MainAnimationMode *string `json:"mainAnimationMode"`
	ShowCategoryTags  *bool   `json:"showCategoryTags"`
}

func DefaultAppPreferences() AppPreferences {
	return AppPreferences{
		ThemeMode:         ThemeGentil,
		MainAnimationMode: AnimationFade,
		ShowCategoryTags:  true,
	}
}

// Apply returns p with every non-nil field of patch applied.
func (p AppPreferences) Apply(patch AppPreferencesPatch) AppPreferences {
	if patch.ThemeMode != nil {
		p.ThemeMode = ThemeMode(*patch.ThemeMode)
	}
	if patch.MainAnimationMode != nil {
		p.MainAnimationMode = AnimationMode(*patch.MainAnimationMode)
	}
	if patch.ShowCategoryTags != nil {
		p.ShowCategoryTags = *patch.ShowCategoryTags
	}
	return p
}

type ThemePalette struct {
	Accent     string `json:"accent"`
	AccentSoft string `json:"accentSoft"`
	Surface    string `json:"surface"`
}

func PaletteFor(mode ThemeMode) ThemePalette {
	switch mode {
	case ThemeSunset:
		return ThemePalette{Accent: "#FB923C", AccentSoft: "rgba(251,146,60,0.15)", Surface: "rgba(251,146,60,0.08)"}
	case ThemeOcean:
		return ThemePalette{Accent: "#38BDF8", AccentSoft: "rgba(56,189,248,0.15)", Surface: "rgba(56,189,248,0.08)"}
	default:
		return ThemePalette{Accent: "#D4AF37", AccentSoft: "rgba(212,175,55,0.15)", Surface: "rgba(212,175,55,0.08)"}
	}
}

// UserDraft is the per-user onboarding and UI state held outside the database.
type UserDraft struct {
	Responses   OnboardingResponses `json:"responses"`
	Completed   bool                `json:"completed"`
	Preferences *AppPreferences     `json:"preferences,omitempty"`
}

// DraftSnapshot is the on-disk format of all drafts.
type DraftSnapshot struct {
	Version int                   `json:"version"`
	Drafts  map[string]*UserDraft `json:"drafts"`
}
