package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale file, and that no locale carries stray keys.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyLblPeople,
		config.TKeyLblNewPerson,
		config.TKeyBtnAddPerson,
		config.TKeyLblVisible,
		config.TKeyBtnImportVCard,
		config.TKeyBtnBrowse,
		config.TKeyLblNewEvent,
		config.TKeyLblPerson,
		config.TKeyLblYear,
		config.TKeyLblMonth,
		config.TKeyLblDay,
		config.TKeyLblStart,
		config.TKeyLblEnd,
		config.TKeyLblTitle,
		config.TKeyLblPlace,
		config.TKeyLblNote,
		config.TKeyBtnAddEvent,
		config.TKeyLblEvents,
		config.TKeyBtnDelete,
		config.TKeyLblView,
		config.TKeyLblWeek,
		config.TKeyLblScene,
		config.TKeyLblConflicts,
		config.TKeyLblLanguage,
		config.TKeyFormatEventRow,
		config.TKeyFormatOverlapRow,
		config.TKeyWholeMonth,
		config.TKeyWeekBucket,
		config.TKeyTooltipEvent,
		config.TKeyTooltipOverlap,
		config.TKeyNoticeEmpty,
		config.TKeyNoticeNoMatch,
		config.TKeyAxisDate,
		config.TKeyAxisPerson,
		config.TKeyAxisTime,
		config.TKeyErrNumber,
		config.TKeyErrRange,
		config.TKeyNotifImported,
		config.TKeyNotifPortBusy,
		config.TKeyTitleInputError,
		config.TKeyTitleStartupError,
	}
	for wd := 0; wd < config.DaysPerWeek; wd++ {
		keysToCheck = append(keysToCheck, config.TKeyPrefixWeekday+strconv.Itoa(wd))
	}

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Every supported language needs a locale file")

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' in active.%s.json has no constant in config.go", jsonKey, lang)
			}
		})
	}
}
