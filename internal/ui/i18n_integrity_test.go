package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
)

// usedKeys lists every translation key the UI asks for.
func usedKeys() []string {
	keys := []string{
		config.TKeyWinTitle, config.TKeyWinSettings, config.TKeyWinContacts,
		config.TKeyLblSubtitle, config.TKeyLblBirthDate, config.TKeyHelpBirth,
		config.TKeyBtnCalculate, config.TKeyBtnReset, config.TKeyBtnRetry,
		config.TKeyBtnExportICS, config.TKeyBtnContacts, config.TKeyBtnSettings,
		config.TKeyBtnSave, config.TKeyBtnCancel, config.TKeyBtnBrowse, config.TKeyBtnLoad,
		config.TKeyStatYears, config.TKeyStatYearsSub,
		config.TKeyStatMonths, config.TKeyStatMonthsSub,
		config.TKeyStatDays, config.TKeyStatDaysSub,
		config.TKeyStatTotal, config.TKeyStatNext, config.TKeyStatNextValue,
		config.TKeyStatNextToday, config.TKeyStatZodiac,
		config.TKeyInsightTitle, config.TKeyInsightLoading, config.TKeyInsightError,
		config.TKeyInsightNoKey, config.TKeyInsightFact, config.TKeyInsightQuote,
		config.TKeyErrInvalidDate, config.TKeyErrExport, config.TKeyErrContacts, config.TKeyErrPartial,
		config.TKeyErrPortReq, config.TKeyErrPortNum, config.TKeyErrPortRange,
		config.TKeyNotifExported, config.TKeyEvtSummaryAge,
		config.TKeyLblGeneral, config.TKeyLblLanguage, config.TKeyHelpLang,
		config.TKeyLblPort, config.TKeyHelpPort,
		config.TKeyLblInsight, config.TKeyLblProvider, config.TKeyLblModel,
		config.TKeyHelpModel, config.TKeyLblBaseURL, config.TKeyLblAPIKey, config.TKeyHelpAPIKey,
		config.TKeyLblSource, config.TKeyModeCardDAV, config.TKeyModeLocal,
		config.TKeyLblURL, config.TKeyHelpURL, config.TKeyLblUser, config.TKeyLblPass,
		config.TKeyLblFooter,
		config.TKeyColName, config.TKeyColDate, config.TKeyColAge, config.TKeyColZodiac,
		config.TKeyFormatDate,
	}
	for _, z := range engine.Signs {
		keys = append(keys, config.TKeyZodiacPrefix+strings.ToLower(string(z)))
	}
	return keys
}

func loadLocale(t *testing.T, lang string) map[string]any {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
	require.NoError(t, err, "Must load locale %s", lang)

	var m map[string]any
	require.NoError(t, json.Unmarshal(content, &m), "JSON must be valid")
	return m
}

// TestI18nIntegrity ensures that every key used by the UI exists in every
// locale, and that no locale carries keys the others lack.
func TestI18nIntegrity(t *testing.T) {
	locales := make(map[string]map[string]any)
	for _, lang := range config.SupportedLanguages {
		locales[lang] = loadLocale(t, lang)
	}

	for lang, m := range locales {
		for _, key := range usedKeys() {
			_, ok := m[key]
			assert.Truef(t, ok, "Key %q is missing in active.%s.json", key, lang)
		}
	}

	ref := locales[config.DefaultLanguage]
	for lang, m := range locales {
		assert.Lenf(t, m, len(ref), "active.%s.json and active.%s.json differ in size", lang, config.DefaultLanguage)
		for key := range m {
			_, ok := ref[key]
			assert.Truef(t, ok, "Key %q in active.%s.json has no %s counterpart", key, lang, config.DefaultLanguage)
		}
	}

	used := make(map[string]bool)
	for _, k := range usedKeys() {
		used[k] = true
	}
	for key := range ref {
		if !used[key] {
			t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", key)
		}
	}
}
