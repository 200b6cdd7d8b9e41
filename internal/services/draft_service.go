package services

import (
	"math"
	"sync"

	"gentil/internal/models"

	"github.com/gookit/validate"
)

const draftSnapshotVersion = 1

type DraftServiceInterface interface {
	Responses(userID string) models.OnboardingResponses
	SaveResponses(userID string, r models.OnboardingResponses)
	Completed(userID string) bool
	MarkCompleted(userID string)
	Reset(userID string)
	CompletionPercent(userID string) int
	AppPreferences(userID string) models.AppPreferences
	SaveAppPreferences(userID string, patch models.AppPreferencesPatch) (models.AppPreferences, error)
	Snapshot() *models.DraftSnapshot
	Restore(snapshot *models.DraftSnapshot)
	Count() int
}

// DraftService keeps onboarding answers and UI preferences per user in memory.
// It is persisted as a whole through Snapshot and Restore.
type DraftService struct {
	mu     sync.RWMutex
	drafts map[string]*models.UserDraft
}

func NewDraftService() *DraftService {
	return &DraftService{drafts: make(map[string]*models.UserDraft)}
}

func (s *DraftService) draft(userID string) *models.UserDraft {
	d, ok := s.drafts[userID]
	if !ok {
		d = &models.UserDraft{}
		s.drafts[userID] = d
	}
	return d
}

func (s *DraftService) Responses(userID string) models.OnboardingResponses {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	if !ok {
		return models.OnboardingResponses{}
	}
	return copyResponses(d.Responses)
}

// SaveResponses replaces the stored answers.
func (s *DraftService) SaveResponses(userID string, r models.OnboardingResponses) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft(userID).Responses = copyResponses(r)
}

func (s *DraftService) Completed(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	return ok && d.Completed
}

func (s *DraftService) MarkCompleted(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft(userID).Completed = true
}

// Reset forgets the answers and the completed flag. UI preferences stay.
func (s *DraftService) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[userID]
	if !ok {
		return
	}
	if d.Preferences == nil {
		delete(s.drafts, userID)
		return
	}
	d.Responses = models.OnboardingResponses{}
	d.Completed = false
}

func (s *DraftService) CompletionPercent(userID string) int {
	return completionPercent(s.Responses(userID))
}

func completionPercent(r models.OnboardingResponses) int {
	return int(math.Round(float64(r.Answered()) / models.AnswerableFields * 100))
}

func (s *DraftService) AppPreferences(userID string) models.AppPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	if !ok || d.Preferences == nil {
		return models.DefaultAppPreferences()
	}
	return *d.Preferences
}

type appPreferencesInput struct {
	ThemeMode         string `json:"themeMode" validate:"in:gentil,sunset,ocean"`
	MainAnimationMode string `json:"mainAnimationMode" validate:"in:fade,slide,scale"`
}

func validatePatch(patch models.AppPreferencesPatch) error {
	fields := map[string]string{}
	in := appPreferencesInput{}
	if patch.ThemeMode != nil {
		if *patch.ThemeMode == "" {
			fields["themeMode"] = "themeMode must not be empty"
		}
		in.ThemeMode = *patch.ThemeMode
	}
	if patch.MainAnimationMode != nil {
		if *patch.MainAnimationMode == "" {
			fields["mainAnimationMode"] = "mainAnimationMode must not be empty"
		}
		in.MainAnimationMode = *patch.MainAnimationMode
	}

	v := validate.Struct(&in)
	v.StopOnError = false
	if !v.Validate() {
		for field, msgs := range v.Errors {
			for _, msg := range msgs {
				fields[field] = msg
				break
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// SaveAppPreferences applies patch over the current preferences.
func (s *DraftService) SaveAppPreferences(userID string, patch models.AppPreferencesPatch) (models.AppPreferences, error) {
	if err := validatePatch(patch); err != nil {
		return models.AppPreferences{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft(userID)
	current := models.DefaultAppPreferences()
	if d.Preferences != nil {
		current = *d.Preferences
	}
	next := current.Apply(patch)
	d.Preferences = &next
	return next, nil
}

// Snapshot returns a deep copy safe to encode while writers continue.
func (s *DraftService) Snapshot() *models.DraftSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := &models.DraftSnapshot{
		Version: draftSnapshotVersion,
		Drafts:  make(map[string]*models.UserDraft, len(s.drafts)),
	}
	for id, d := range s.drafts {
		out.Drafts[id] = copyDraft(d)
	}
	return out
}

// Restore replaces all drafts with the snapshot's.
func (s *DraftService) Restore(snapshot *models.DraftSnapshot) {
	drafts := make(map[string]*models.UserDraft)
	if snapshot != nil {
		for id, d := range snapshot.Drafts {
			if d == nil {
				continue
			}
			drafts[id] = copyDraft(d)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = drafts
}

func (s *DraftService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

func copyResponses(r models.OnboardingResponses) models.OnboardingResponses {
	if r.Categories != nil {
		r.Categories = append([]string(nil), r.Categories...)
	}
	return r
}

func copyDraft(d *models.UserDraft) *models.UserDraft {
	cp := &models.UserDraft{
		Responses: copyResponses(d.Responses),
		Completed: d.Completed,
	}
	if d.Preferences != nil {
		p := *d.Preferences
		cp.Preferences = &p
	}
	return cp
}
