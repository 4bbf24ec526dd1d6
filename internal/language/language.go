// Package language maps whisper language codes to display names for the
// detection summary shown after a run.
package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	code    string // ISO 639-1 as emitted by the engine
	display string
	words   []string // full word forms accepted as input
}

var languages = []entry{
	{"en", "English", []string{"english"}},
	{"es", "Spanish", []string{"spanish"}},
	{"fr", "French", []string{"french"}},
	{"de", "German", []string{"german"}},
	{"it", "Italian", []string{"italian"}},
	{"pt", "Portuguese", []string{"portuguese"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"ko", "Korean", []string{"korean"}},
	{"zh", "Chinese", []string{"chinese"}},
	{"ru", "Russian", []string{"russian"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"nl", "Dutch", []string{"dutch"}},
	{"pl", "Polish", []string{"polish"}},
	{"tr", "Turkish", []string{"turkish"}},
	{"sv", "Swedish", []string{"swedish"}},
	{"da", "Danish", []string{"danish"}},
	{"no", "Norwegian", []string{"norwegian"}},
	{"fi", "Finnish", []string{"finnish"}},
	{"uk", "Ukrainian", []string{"ukrainian"}},
	{"vi", "Vietnamese", []string{"vietnamese"}},
	{"th", "Thai", []string{"thai"}},
	{"id", "Indonesian", []string{"indonesian"}},
}

var (
	byCode map[string]*entry
	byWord map[string]*entry
)

func init() {
	byCode = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Normalize converts a language code or full word form ("korean") to the
// 2-letter code the engine expects. Unrecognized 2-letter codes pass
// through so new whisper languages still work; everything else maps to
// empty, which the engine treats as auto-detect.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "auto" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// Display returns a human-readable name for a language code. Unknown
// codes are title-cased rather than echoed raw.
func Display(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return cases.Title(language.Und).String(strings.TrimSpace(code))
}
