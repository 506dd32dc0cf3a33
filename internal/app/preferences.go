package app

import "context"

// PreferenceStore abstracts how preference values are persisted (in-memory,
// Redis, etc). Values are plain strings; last write wins.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Preference keys. The pixelQuiz prefix is kept from the original client so
// exported settings stay recognizable.
const (
	PrefPlayerName   = "pixelQuizPlayerName"
	PrefSound        = "pixelQuizSound"
	PrefAnimations   = "pixelQuizAnimations"
	PrefHighContrast = "pixelQuizHighContrast"
	PrefDuration     = "pixelQuizDuration"
	PrefTheme        = "pixelQuizTheme"
)

// DurationTier selects the per-question time limit.
type DurationTier string

const (
	DurationQuick    DurationTier = "quick"    // 20s per question
	DurationNormal   DurationTier = "normal"   // 30s per question
	DurationExtended DurationTier = "extended" // 45s per question
)

// Seconds maps the tier to its per-question limit. Unknown tiers fall back
// to normal.
func (t DurationTier) Seconds() float64 {
	switch t {
	case DurationQuick:
		return 20
	case DurationExtended:
		return 45
	default:
		return DefaultTimeLimit
	}
}

// Settings is the typed view of all stored preferences.
type Settings struct {
	PlayerName        string       `json:"playerName"`
	SoundEnabled      bool         `json:"soundEnabled"`
	AnimationsEnabled bool         `json:"animationsEnabled"`
	HighContrast      bool         `json:"highContrast"`
	Duration          DurationTier `json:"duration"`
	Theme             string       `json:"theme"`
}

// DefaultSettings are the values assumed when a key is absent.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:      true,
		AnimationsEnabled: true,
		Duration:          DurationNormal,
		Theme:             "default",
	}
}

// PreferenceService wraps the raw key-value store with typed accessors.
type PreferenceService struct {
	store PreferenceStore
}

func NewPreferenceService(store PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Load reads all preferences, applying defaults for absent keys.
func (s *PreferenceService) Load(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()

	if v, ok, err := s.store.Get(ctx, PrefPlayerName); err != nil {
		return settings, err
	} else if ok {
		settings.PlayerName = v
	}
	// The boolean toggles default to on: any stored value other than the
	// literal "false" keeps them enabled.
	if v, ok, err := s.store.Get(ctx, PrefSound); err != nil {
		return settings, err
	} else if ok {
		settings.SoundEnabled = v != "false"
	}
	if v, ok, err := s.store.Get(ctx, PrefAnimations); err != nil {
		return settings, err
	} else if ok {
		settings.AnimationsEnabled = v != "false"
	}
	if v, ok, err := s.store.Get(ctx, PrefHighContrast); err != nil {
		return settings, err
	} else if ok {
		settings.HighContrast = v == "true"
	}
	if v, ok, err := s.store.Get(ctx, PrefDuration); err != nil {
		return settings, err
	} else if ok {
		switch DurationTier(v) {
		case DurationQuick, DurationNormal, DurationExtended:
			settings.Duration = DurationTier(v)
		}
	}
	if v, ok, err := s.store.Get(ctx, PrefTheme); err != nil {
		return settings, err
	} else if ok && v != "" {
		settings.Theme = v
	}
	return settings, nil
}

// Save writes all preferences.
func (s *PreferenceService) Save(ctx context.Context, settings Settings) error {
	duration := settings.Duration
	switch duration {
	case DurationQuick, DurationNormal, DurationExtended:
	default:
		duration = DurationNormal
	}
	theme := settings.Theme
	if theme == "" {
		theme = "default"
	}

	pairs := map[string]string{
		PrefPlayerName:   settings.PlayerName,
		PrefSound:        boolString(settings.SoundEnabled),
		PrefAnimations:   boolString(settings.AnimationsEnabled),
		PrefHighContrast: boolString(settings.HighContrast),
		PrefDuration:     string(duration),
		PrefTheme:        theme,
	}
	for key, value := range pairs {
		if err := s.store.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Reset deletes all stored preferences, restoring defaults.
func (s *PreferenceService) Reset(ctx context.Context) error {
	keys := []string{
		PrefPlayerName, PrefSound, PrefAnimations,
		PrefHighContrast, PrefDuration, PrefTheme,
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// PlayerName returns the stored display name, or "" when unset.
func (s *PreferenceService) PlayerName(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, PrefPlayerName)
	return v, err
}

// TimeLimitSeconds resolves the stored duration tier to seconds per question.
func (s *PreferenceService) TimeLimitSeconds(ctx context.Context) (float64, error) {
	v, ok, err := s.store.Get(ctx, PrefDuration)
	if err != nil {
		return DefaultTimeLimit, err
	}
	if !ok {
		return DefaultTimeLimit, nil
	}
	return DurationTier(v).Seconds(), nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
