package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sentinel/internal/model"
	"sentinel/internal/utils"
)

// Languages with pre-generated voice alerts.
var Languages = []string{"english", "hausa", "yoruba", "igbo"}

// AlertService picks the narrated audio clip for a verdict. Clips live in Dir
// and are served under URLPrefix.
type AlertService struct {
	Dir             string
	URLPrefix       string
	DefaultLanguage string
}

func NewAlertService(dir, defaultLanguage string) *AlertService {
	if !isSupportedLanguage(defaultLanguage) {
		defaultLanguage = Languages[0]
	}
	return &AlertService{
		Dir:             dir,
		URLPrefix:       "/audio",
		DefaultLanguage: defaultLanguage,
	}
}

// AlertKind maps a status to its clip kind. Statuses without a clip
// (unknown, idle, scanning) report false.
func AlertKind(status model.Status) (string, bool) {
	switch status {
	case model.StatusSafe:
		return "safe", true
	case model.StatusUnsafe:
		return "danger", true
	case model.StatusCaution:
		return "caution", true
	}
	return "", false
}

// Select returns the public path of the clip for status in language. A
// missing clip yields ok=false; it never affects the verdict.
func (a *AlertService) Select(status model.Status, language string) (string, bool) {
	kind, ok := AlertKind(status)
	if !ok {
		return "", false
	}

	language = strings.ToLower(strings.TrimSpace(language))
	if !isSupportedLanguage(language) {
		language = a.DefaultLanguage
	}

	name := fmt.Sprintf("%s_%s.mp3", language, kind)
	if _, err := os.Stat(filepath.Join(a.Dir, name)); err != nil {
		utils.Log.Debug("audio alert unavailable",
			utils.Field("file", name),
			utils.Field("error", err.Error()))
		return "", false
	}
	return a.URLPrefix + "/" + name, true
}

func isSupportedLanguage(language string) bool {
	for _, l := range Languages {
		if l == language {
			return true
		}
	}
	return false
}
