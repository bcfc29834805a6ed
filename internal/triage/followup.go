package triage

import "github.com/linnemanlabs/gabay/internal/assistant"

// defaultFollowUps holds the clarifying questions per symptom and language.
// Only cough and fever have questions today; other symptoms yield none.
// Tagalog phrasing is the fallback for unrecognized languages.
func defaultFollowUps() map[string]map[assistant.Language][]string {
	return map[string]map[assistant.Language][]string{
		"cough": {
			assistant.English: {
				"How long have you had the cough?",
				"Do you have phlegm, and what color is it?",
				"Do you also have fever or difficulty breathing?",
			},
			assistant.Tagalog: {
				"Gaano na katagal ang ubo mo?",
				"May plema ka ba, at anong kulay?",
				"May lagnat ka rin ba o hirap huminga?",
			},
			assistant.Bikol: {
				"Pira nang aldaw an saimong ubo?",
				"Igwa ka nin plema, asin anong kolor?",
				"Igwa ka man nin kalintura o nadedepisilan maghangos?",
			},
		},
		"fever": {
			assistant.English: {
				"How high is your temperature, if you have measured it?",
				"How many days have you had the fever?",
				"Do you have rashes, a stiff neck, or severe headache?",
			},
			assistant.Tagalog: {
				"Gaano kataas ang lagnat mo, kung nasukat?",
				"Ilang araw ka nang nilalagnat?",
				"May pantal ka ba, paninigas ng leeg, o matinding sakit ng ulo?",
			},
			assistant.Bikol: {
				"Gurano kalangkaw an saimong kalintura, kun nasukol?",
				"Pirang aldaw ka nang may kalintura?",
				"Igwa ka nin pantal, pagtagas kan liog, o grabeng kulog nin payo?",
			},
		},
	}
}
