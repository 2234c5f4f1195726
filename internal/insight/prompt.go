package insight

import (
	"fmt"

	"github.com/tartampluch/go-agecalc/internal/config"
)

type promptSet struct {
	body      string // birth year, age
	system    string
	factDesc  string
	quoteDesc string
}

var prompts = map[string]promptSet{
	config.LangIndonesian: {
		body: "Berikan saya satu fakta sejarah menarik dan positif yang terjadi pada tahun %d di dunia (dalam Bahasa Indonesia).\n" +
			"Juga berikan satu kutipan inspiratif pendek untuk seseorang yang berumur %d tahun agar semangat menjalani hidup.\n" +
			"Output harus dalam JSON yang valid dengan kunci \"historicalFact\" dan \"inspirationalQuote\".",
		system:    "Anda adalah asisten yang hanya menjawab dengan JSON yang valid.",
		factDesc:  "Fakta sejarah menarik dari tahun kelahiran",
		quoteDesc: "Kutipan inspiratif untuk umur tersebut",
	},
	config.LangEnglish: {
		body: "Give me one interesting and positive historical fact about something that happened in the world in %d.\n" +
			"Also give one short inspirational quote for someone who is %d years old, to encourage them in life.\n" +
			"The output must be valid JSON with the keys \"historicalFact\" and \"inspirationalQuote\".",
		system:    "You are an assistant that only answers with valid JSON.",
		factDesc:  "An interesting fact from the birth year",
		quoteDesc: "An inspirational quote for that age",
	},
}

// promptsFor falls back to English for unknown languages.
func promptsFor(lang string) promptSet {
	if p, ok := prompts[lang]; ok {
		return p
	}
	return prompts[config.LangEnglish]
}

// Prompt renders the user prompt in the given language.
func Prompt(lang string, birthYear, ageYears int) string {
	return fmt.Sprintf(promptsFor(lang).body, birthYear, ageYears)
}
