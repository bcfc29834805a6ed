package triage

import (
	"regexp"

	"github.com/linnemanlabs/gabay/internal/assistant"
)

// SymptomRule is one symptom category: an ordered list of patterns covering
// English, Tagalog, and Bikol surface forms. Keywords are the display forms
// reported on a SymptomMatch.
type SymptomRule struct {
	Name     string
	Keywords []string
	Patterns []*regexp.Regexp
}

// RedFlagRule maps one pattern to the human-readable flag it contributes.
type RedFlagRule struct {
	Flag    string
	Pattern *regexp.Regexp
}

// Tables is the read-only rule set a triage Engine runs on. Build once via
// DefaultTables (or hand-construct in tests) and treat as frozen.
type Tables struct {
	// Symptoms in declaration order; DetectSymptoms output preserves it.
	Symptoms []SymptomRule

	// GeneralRedFlags are tested against every message regardless of
	// detected symptoms.
	GeneralRedFlags []RedFlagRule

	// SymptomRedFlags are tested only for symptoms present in the input,
	// in the order the symptoms appear.
	SymptomRedFlags map[string][]RedFlagRule

	// ERIndicators are lowercase substrings scanned against produced flag
	// text to decide requiresER. Substring matching, not equality: this
	// mirrors the display-text re-detection the product shipped with.
	ERIndicators []string

	// Medications maps a symptom to its OTC entries. The first two per
	// detected symptom make it onto the medication card.
	Medications map[string][]assistant.MedicationCardItem

	// FollowUps maps a symptom to up to three clarifying questions per
	// language. Tagalog is the fallback for unrecognized languages.
	FollowUps map[string]map[assistant.Language][]string

	// Disclaimers by severity tier and language.
	Disclaimers map[assistant.Urgency]map[assistant.Language]string

	// HealthPatterns back IsHealthRelated: symptom names, body-part pain
	// words, and doctor/hospital/medicine terms in all three languages.
	HealthPatterns []*regexp.Regexp
}

// DefaultTables returns the built-in rule set.
func DefaultTables() *Tables {
	return &Tables{
		Symptoms: []SymptomRule{
			{
				Name:     "cough",
				Keywords: []string{"cough", "ubo", "sore throat"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(cough|coughing|ubo|inuubo|nag-uubo)\b`),
					regexp.MustCompile(`(?i)\b(sore throat|throat (pain|hurts)|masakit ang lalamunan|kulog nin tutunlan)\b`),
				},
			},
			{
				Name:     "fever",
				Keywords: []string{"fever", "lagnat", "kalintura"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(fever|feverish|lagnat|nilalagnat|may lagnat|kalintura|hilang)\b`),
					regexp.MustCompile(`(?i)\b(feel(ing)? hot|mainit ang katawan|init an hawak)\b`),
				},
			},
			{
				Name:     "headache",
				Keywords: []string{"headache", "sakit ng ulo", "kulog nin payo"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(headache|head (hurts|aches?|pain)|migraine)\b`),
					regexp.MustCompile(`(?i)\b((ma)?sakit (ang|ng) ulo|sumasakit ang ulo|kulog nin payo|makulog an payo)\b`),
				},
			},
			{
				Name:     "stomachache",
				Keywords: []string{"stomachache", "sakit ng tiyan", "kulog nin tulak"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(stomach ?ache|stomach (pain|hurts)|tummy ache|abdominal pain)\b`),
					regexp.MustCompile(`(?i)\b((ma)?sakit (ang|ng) tiyan|sumasakit ang tiyan|kulog nin tulak|makulog an tulak)\b`),
				},
			},
			{
				Name:     "diarrhea",
				Keywords: []string{"diarrhea", "pagtatae", "kurso"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(diarrhea|diarrhoea|loose (bowel|stool)s?|lbm|pagtatae|nagtatae|kurso|nagkukurso)\b`),
				},
			},
			{
				Name:     "cold",
				Keywords: []string{"cold", "sipon"},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`(?i)\b(colds?|runny nose|stuffy nose|nasal congestion|sipon|sinipon|may sipon)\b`),
				},
			},
		},

		GeneralRedFlags: []RedFlagRule{
			{
				Flag:    "Pregnant - consult a doctor before taking any medication",
				Pattern: regexp.MustCompile(`(?i)\b(pregnant|pregnancy|buntis|bados)\b`),
			},
			{
				Flag:    "Infant or child under 2 years old",
				Pattern: regexp.MustCompile(`(?i)\b(infant|newborn|baby|sanggol|umboy|under (2|two) years?|below (2|two) years?)\b`),
			},
			{
				Flag:    "Emergency assistance requested",
				Pattern: regexp.MustCompile(`(?i)\b(emergency|emerhensya|saklolo|tabang po|tabangi)\b`),
			},
			{
				Flag:    "Loss of consciousness",
				Pattern: regexp.MustCompile(`(?i)\b(unconscious|passed out|fainted|collapsed|nawalan ng malay|hinimatay|nawaran nin pagmate)\b`),
			},
		},

		SymptomRedFlags: map[string][]RedFlagRule{
			"cough": {
				{
					Flag:    "Blood in sputum or coughing blood",
					Pattern: regexp.MustCompile(`(?i)\b(cough(ing)? (up )?blood|blood (in|when).{0,20}(sputum|cough)|may dugo ang (ubo|plema)|dugo sa plema)\b`),
				},
				{
					Flag:    "Chest pain with coughing",
					Pattern: regexp.MustCompile(`(?i)\b(chest pain|chest (hurts|tightness)|masakit ang dibdib|kulog nin daghan)\b`),
				},
				{
					Flag:    "Difficulty breathing",
					Pattern: regexp.MustCompile(`(?i)\b(difficulty breathing|short(ness)? of breath|can('|no)?t breathe|hard to breathe|hirap huminga|nahihirapan huminga|nadedepisilan maghangos)\b`),
				},
				{
					Flag:    "High fever (39°C or above) with cough",
					Pattern: regexp.MustCompile(`(?i)\b(high fever|39(\.\d)?\s*(degrees|°?c)|mataas na lagnat)\b`),
				},
				{
					Flag:    "Cough lasting more than 2 weeks",
					Pattern: regexp.MustCompile(`(?i)\b((more than|over|mahigit) (2|two|dalawang) (weeks?|linggo)|(2|two) weeks? (of|na) (cough|ubo)|ilang linggo nang? ubo)\b`),
				},
			},
			"fever": {
				{
					Flag:    "Very high fever (40°C or above)",
					Pattern: regexp.MustCompile(`(?i)\b(very high fever|4[0-2](\.\d)?\s*(degrees|°?c)|sobrang taas ng lagnat)\b`),
				},
				{
					Flag:    "Seizure or convulsion",
					Pattern: regexp.MustCompile(`(?i)\b(seizures?|convulsions?|kombulsyon|kinukumbulsyon)\b`),
				},
				{
					Flag:    "Stiff neck with fever",
					Pattern: regexp.MustCompile(`(?i)\b(stiff neck|neck stiffness|matigas ang leeg|matagas an liog)\b`),
				},
				{
					Flag:    "Confusion or disorientation",
					Pattern: regexp.MustCompile(`(?i)\b(confus(ed|ion)|disoriented|incoherent|nalilito|hindi makilala ang tao)\b`),
				},
			},
		},

		ERIndicators: []string{
			"blood in sputum",
			"chest pain",
			"difficulty breathing",
			"very high fever",
			"seizure",
			"loss of consciousness",
			"stiff neck with fever",
		},

		Medications: defaultMedications(),
		FollowUps:   defaultFollowUps(),
		Disclaimers: defaultDisclaimers(),

		HealthPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(fever|cough|headache|stomach|diarrhea|cold|flu|rash|dizzy|vomit|nausea|wound|injury|allergy)\b`),
			regexp.MustCompile(`(?i)\b(pain|hurts?|aches?|sick|ill|symptom)\b`),
			regexp.MustCompile(`(?i)\b(doctor|hospital|clinic|health center|pharmacy|botica|medicine|medication|checkup|emergency|ambulance)\b`),
			regexp.MustCompile(`(?i)\b(sakit|masakit|lagnat|ubo|sipon|pagtatae|sugat|gamot|doktor|ospital|emerhensya)\b`),
			regexp.MustCompile(`(?i)\b(kulog|makulog|kalintura|kurso|bulong|tambal|hilot)\b`),
		},
	}
}
