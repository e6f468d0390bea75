package i18n

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localesFS embed.FS

// Translations holds all translation strings organized by section
type Translations struct {
	Errors   ErrorTranslations    `yaml:"errors"`
	Formats  FormatTranslations   `yaml:"formats"`
	Waitlist WaitlistTranslations `yaml:"waitlist"`
	Server   ServerTranslations   `yaml:"server"`
}

// ErrorTranslations holds user-facing messages for extraction failures
type ErrorTranslations struct {
	URLRequired   string `yaml:"url_required" json:"url_required"`
	InvalidURL    string `yaml:"invalid_url" json:"invalid_url"`
	Unavailable   string `yaml:"unavailable" json:"unavailable"`
	Private       string `yaml:"private" json:"private"`
	AgeRestricted string `yaml:"age_restricted" json:"age_restricted"`
	NotFound      string `yaml:"not_found" json:"not_found"`
	Timeout       string `yaml:"timeout" json:"timeout"`
	Generic       string `yaml:"generic" json:"generic"`
}

// FormatTranslations holds labels used when listing formats
type FormatTranslations struct {
	Extracting  string `yaml:"extracting"`
	VideoAudio  string `yaml:"video_audio"`
	AudioOnly   string `yaml:"audio_only"`
	Recommended string `yaml:"recommended"`
	NoFormats   string `yaml:"no_formats"`
	PickHint    string `yaml:"pick_hint"`
	Duration    string `yaml:"duration"`
	Views       string `yaml:"views"`
	Author      string `yaml:"author"`
}

// WaitlistTranslations holds waitlist responses
type WaitlistTranslations struct {
	Joined       string `yaml:"joined" json:"joined"`
	AlreadyIn    string `yaml:"already_in" json:"already_in"`
	InvalidEmail string `yaml:"invalid_email" json:"invalid_email"`
}

// ServerTranslations holds translations for server messages
type ServerTranslations struct {
	NoConfigWarning string `yaml:"no_config_warning"`
	RunInitHint     string `yaml:"run_init_hint"`
	Busy            string `yaml:"busy"`
}

var (
	translationsCache = make(map[string]*Translations)
	cacheMutex        sync.RWMutex
	defaultLang       = "en"
)

// SupportedLanguages returns all available language codes
var SupportedLanguages = []struct {
	Code string
	Name string
}{
	{"en", "English"},
	{"zh", "中文"},
}

// GetTranslations returns translations for the specified language
func GetTranslations(lang string) *Translations {
	cacheMutex.RLock()
	if t, ok := translationsCache[lang]; ok {
		cacheMutex.RUnlock()
		return t
	}
	cacheMutex.RUnlock()

	// Load from file
	t, err := loadTranslations(lang)
	if err != nil {
		// Fall back to English
		if lang != defaultLang {
			return GetTranslations(defaultLang)
		}
		// Return empty translations if even English fails
		return &Translations{}
	}

	cacheMutex.Lock()
	translationsCache[lang] = t
	cacheMutex.Unlock()

	return t
}

func loadTranslations(lang string) (*Translations, error) {
	filename := fmt.Sprintf("locales/%s.yml", lang)
	data, err := localesFS.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var t Translations
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

// T is a convenience function for getting translations
func T(lang string) *Translations {
	return GetTranslations(lang)
}
