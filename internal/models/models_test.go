package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AddDays_MonthAndYearRollover(t *testing.T) {
	assert.Equal(t, MustDate("2024-02-01"), MustDate("2024-01-31").AddDays(1))
	assert.Equal(t, MustDate("2024-02-29"), MustDate("2024-03-01").AddDays(-1))
	assert.Equal(t, MustDate("2025-01-01"), MustDate("2024-12-31").AddDays(1))
}

func TestDateOf_UsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*3600)
	instant := time.Date(2024, 1, 11, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, MustDate("2024-01-11"), DateOf(instant, time.UTC))
	assert.Equal(t, MustDate("2024-01-10"), DateOf(instant, saoPaulo))
}

func TestDate_DaysSince(t *testing.T) {
	assert.Equal(t, 0, MustDate("2024-01-10").DaysSince(MustDate("2024-01-10")))
	assert.Equal(t, 3, MustDate("2024-01-13").DaysSince(MustDate("2024-01-10")))
	assert.Equal(t, -1, MustDate("2024-01-09").DaysSince(MustDate("2024-01-10")))
}

func TestDate_JSON(t *testing.T) {
	data, err := json.Marshal(StreakRecord{CurrentStreak: 2, LongestStreak: 3, LastActivityDate: MustDate("2024-01-10")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_streak":2,"longest_streak":3,"last_activity_date":"2024-01-10"}`, string(data))

	var rec StreakRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, MustDate("2024-01-10"), rec.LastActivityDate)
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, MustDate("2024-01-10"), d)

	require.NoError(t, d.Scan("2024-02-03"))
	assert.Equal(t, MustDate("2024-02-03"), d)

	require.NoError(t, d.Scan([]byte("2024-02-04T00:00:00Z")))
	assert.Equal(t, MustDate("2024-02-04"), d)

	assert.Error(t, d.Scan(42))
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"08:00", TimeOfDay{8, 0}, false},
		{"21:30", TimeOfDay{21, 30}, false},
		{"7:05", TimeOfDay{7, 5}, false},
		{"08:00:00", TimeOfDay{8, 0}, false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_StringAndMinutes(t *testing.T) {
	tod := TimeOfDay{Hour: 9, Minute: 18}
	assert.Equal(t, "09:18", tod.String())
	assert.Equal(t, 558, tod.Minutes())
}

func TestOnboardingResponses_Answered(t *testing.T) {
	r := OnboardingResponses{
		Name:                "Ana",
		Signo:               "Leão",
		NotificationsPerDay: 5,
		Categories:          []string{"amor"},
	}
	assert.Equal(t, 2, r.Answered())
}

func TestAppPreferences_Apply(t *testing.T) {
	theme := "ocean"
	tags := false
	got := DefaultAppPreferences().Apply(AppPreferencesPatch{ThemeMode: &theme, ShowCategoryTags: &tags})

	assert.Equal(t, ThemeOcean, got.ThemeMode)
	assert.Equal(t, AnimationFade, got.MainAnimationMode)
	assert.False(t, got.ShowCategoryTags)
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, "#FB923C", PaletteFor(ThemeSunset).Accent)
	assert.Equal(t, "#38BDF8", PaletteFor(ThemeOcean).Accent)
	assert.Equal(t, "#D4AF37", PaletteFor(ThemeGentil).Accent)
	assert.Equal(t, "#D4AF37", PaletteFor("unknown").Accent)
}
