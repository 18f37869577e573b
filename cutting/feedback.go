package cutting

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Ключи сообщений (английский текст служит и ключом, и переводом по умолчанию)
const (
	msgOptimal  = "Chip load %.3f mm is optimal (recommended %.3f mm)"
	msgTooLow   = "Chip load %.3f mm is too low (recommended %.3f mm): increase feed rate or reduce spindle speed"
	msgTooHigh  = "Chip load %.3f mm is too high (recommended %.3f mm): reduce feed rate or increase spindle speed"
	msgNoSpeeds = "Spindle speed and flute count are required to evaluate chip load"
)

var supported = []language.Tag{language.English, language.German, language.Russian}

var translations = map[language.Tag]map[string]string{
	language.English: {
		msgOptimal:  msgOptimal,
		msgTooLow:   msgTooLow,
		msgTooHigh:  msgTooHigh,
		msgNoSpeeds: msgNoSpeeds,
	},
	language.German: {
		msgOptimal:  "Spanlast %.3f mm ist optimal (empfohlen %.3f mm)",
		msgTooLow:   "Spanlast %.3f mm ist zu niedrig (empfohlen %.3f mm): Vorschub erhöhen oder Drehzahl senken",
		msgTooHigh:  "Spanlast %.3f mm ist zu hoch (empfohlen %.3f mm): Vorschub senken oder Drehzahl erhöhen",
		msgNoSpeeds: "Für die Bewertung der Spanlast werden Drehzahl und Schneidenzahl benötigt",
	},
	language.Russian: {
		msgOptimal:  "Подача на зуб %.3f мм оптимальна (рекомендуется %.3f мм)",
		msgTooLow:   "Подача на зуб %.3f мм слишком мала (рекомендуется %.3f мм): увеличьте подачу или снизьте обороты",
		msgTooHigh:  "Подача на зуб %.3f мм слишком велика (рекомендуется %.3f мм): снизьте подачу или увеличьте обороты",
		msgNoSpeeds: "Для оценки подачи на зуб нужны обороты шпинделя и число зубьев",
	},
}

var (
	feedbackCatalog = newCatalog()
	matcher         = language.NewMatcher(supported)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// printer возвращает Printer для языка в формате Accept-Language ("ru", "de-DE", "en;q=0.8");
// неизвестные языки заменяются английским
func printer(lang string) *message.Printer {
	tags, _, err := language.ParseAcceptLanguage(lang)
	idx := 0
	if err == nil && len(tags) > 0 {
		_, idx, _ = matcher.Match(tags...)
	}
	return message.NewPrinter(supported[idx], message.Catalog(feedbackCatalog))
}

// GetCuttingFeedback возвращает вердикт по подаче на зуб на языке lang
func GetCuttingFeedback(actual, optimal float64, lang string) string {
	p := printer(lang)
	switch {
	case actual <= 0 || optimal <= 0:
		return p.Sprintf(msgNoSpeeds)
	case IsFeedRateOptimal(actual, optimal):
		return p.Sprintf(msgOptimal, actual, optimal)
	case actual < optimal:
		return p.Sprintf(msgTooLow, actual, optimal)
	default:
		return p.Sprintf(msgTooHigh, actual, optimal)
	}
}
