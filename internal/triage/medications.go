package triage

import "github.com/linnemanlabs/gabay/internal/assistant"

// GeneralDisclaimer is attached to every medication card.
const GeneralDisclaimer = "General information only. Always read the label, " +
	"follow the recommended dose, and consult a pharmacist or doctor if unsure."

// defaultMedications is the fixed OTC lookup table, keyed by symptom.
// English-only by design; the card is static reference content, not
// conversational text.
func defaultMedications() map[string][]assistant.MedicationCardItem {
	return map[string][]assistant.MedicationCardItem{
		"cough": {
			{
				GenericName:     "Dextromethorphan",
				BrandExamples:   []string{"Robitussin DM", "Tuseran Forte"},
				Why:             "Suppresses a dry, non-productive cough.",
				HowToUseGeneral: "Adults: follow label dosing, usually every 6-8 hours as needed.",
				Cautions:        []string{"May cause drowsiness", "Do not combine with other cough-and-cold products containing the same ingredient"},
				AvoidIf:         []string{"Taking MAOI antidepressants", "Chronic cough from smoking or asthma"},
				WhenToSeeDoctor: "Cough lasts more than 7 days, or comes with fever, rash, or persistent headache.",
			},
			{
				GenericName:     "Guaifenesin",
				BrandExamples:   []string{"Robitussin Guaifenesin"},
				Why:             "Loosens phlegm so a productive cough clears more easily.",
				HowToUseGeneral: "Take with a full glass of water; follow label dosing.",
				Cautions:        []string{"Drink plenty of fluids while taking"},
				AvoidIf:         []string{"Known allergy to guaifenesin"},
				WhenToSeeDoctor: "Phlegm turns bloody or rust-colored, or cough worsens after a week.",
			},
		},
		"fever": {
			{
				GenericName:     "Paracetamol",
				BrandExamples:   []string{"Biogesic", "Tempra"},
				Why:             "Reduces fever and relieves mild body aches.",
				HowToUseGeneral: "Adults: 500mg every 4-6 hours as needed, maximum 4g per day.",
				Cautions:        []string{"Do not exceed the daily maximum", "Check other medicines for hidden paracetamol"},
				AvoidIf:         []string{"Liver disease", "Heavy alcohol use"},
				WhenToSeeDoctor: "Fever above 39°C, lasting more than 3 days, or with stiff neck or rash.",
			},
			{
				GenericName:     "Ibuprofen",
				BrandExamples:   []string{"Advil", "Medicol Advance"},
				Why:             "Reduces fever and inflammation.",
				HowToUseGeneral: "Take with food; follow label dosing.",
				Cautions:        []string{"Can irritate the stomach", "Avoid during dengue season unless cleared by a doctor"},
				AvoidIf:         []string{"Stomach ulcers", "Kidney disease", "Suspected dengue"},
				WhenToSeeDoctor: "Fever with bleeding gums, black stools, or severe abdominal pain.",
			},
		},
		"headache": {
			{
				GenericName:     "Paracetamol",
				BrandExamples:   []string{"Biogesic"},
				Why:             "First-line relief for tension-type headache.",
				HowToUseGeneral: "Adults: 500mg every 4-6 hours as needed, maximum 4g per day.",
				Cautions:        []string{"Do not exceed the daily maximum"},
				AvoidIf:         []string{"Liver disease"},
				WhenToSeeDoctor: "Sudden severe headache, headache after a head injury, or with fever and stiff neck.",
			},
			{
				GenericName:     "Ibuprofen",
				BrandExamples:   []string{"Advil"},
				Why:             "Relieves headache, especially with inflammation.",
				HowToUseGeneral: "Take with food; follow label dosing.",
				Cautions:        []string{"Can irritate the stomach"},
				AvoidIf:         []string{"Stomach ulcers", "Kidney disease"},
				WhenToSeeDoctor: "Headache that keeps returning for more than a week.",
			},
		},
		"stomachache": {
			{
				GenericName:     "Aluminum hydroxide + Magnesium hydroxide",
				BrandExamples:   []string{"Kremil-S", "Maalox"},
				Why:             "Neutralizes stomach acid for hyperacidity-type pain.",
				HowToUseGeneral: "Chew or take after meals and at bedtime; follow label dosing.",
				Cautions:        []string{"May affect absorption of other medicines taken at the same time"},
				AvoidIf:         []string{"Kidney disease"},
				WhenToSeeDoctor: "Severe or worsening pain, vomiting blood, or black stools.",
			},
			{
				GenericName:     "Hyoscine butylbromide",
				BrandExamples:   []string{"Buscopan"},
				Why:             "Relieves stomach cramps and spasms.",
				HowToUseGeneral: "Adults: follow label dosing, usually up to 3 times daily.",
				Cautions:        []string{"May cause dry mouth or blurred vision"},
				AvoidIf:         []string{"Glaucoma", "Difficulty urinating"},
				WhenToSeeDoctor: "Pain localizing to the lower right abdomen, or with fever.",
			},
		},
		"diarrhea": {
			{
				GenericName:     "Oral rehydration salts",
				BrandExamples:   []string{"Hydrite", "Glucolyte"},
				Why:             "Replaces fluids and salts lost to diarrhea; the most important step.",
				HowToUseGeneral: "Dissolve in clean water per packet instructions; sip frequently.",
				Cautions:        []string{"Prepare fresh solution every 24 hours"},
				AvoidIf:         []string{},
				WhenToSeeDoctor: "Signs of dehydration, blood in stool, or diarrhea beyond 2 days.",
			},
			{
				GenericName:     "Loperamide",
				BrandExamples:   []string{"Imodium", "Diatabs"},
				Why:             "Slows bowel movement for non-bloody, non-febrile diarrhea.",
				HowToUseGeneral: "Adults: follow label dosing after each loose stool, within the daily maximum.",
				Cautions:        []string{"Stop if constipation or bloating develops"},
				AvoidIf:         []string{"Fever", "Blood or mucus in stool", "Children under 12"},
				WhenToSeeDoctor: "High fever, bloody stool, or no improvement within 48 hours.",
			},
		},
		"cold": {
			{
				GenericName:     "Phenylephrine + Chlorphenamine + Paracetamol",
				BrandExamples:   []string{"Neozep Forte", "Bioflu"},
				Why:             "Relieves nasal congestion, runny nose, and the body aches of a cold.",
				HowToUseGeneral: "Adults: one tablet every 6 hours as needed; follow label dosing.",
				Cautions:        []string{"May cause drowsiness", "Contains paracetamol - mind the daily maximum"},
				AvoidIf:         []string{"Uncontrolled high blood pressure", "Taking other paracetamol products"},
				WhenToSeeDoctor: "Symptoms beyond 10 days, high fever, or colored nasal discharge with facial pain.",
			},
			{
				GenericName:     "Cetirizine",
				BrandExamples:   []string{"Virlix", "Allerkid"},
				Why:             "Relieves runny nose and sneezing, especially when allergy-driven.",
				HowToUseGeneral: "Adults: 10mg once daily.",
				Cautions:        []string{"May cause mild drowsiness"},
				AvoidIf:         []string{"Severe kidney disease"},
				WhenToSeeDoctor: "Wheezing, difficulty breathing, or symptoms beyond 2 weeks.",
			},
		},
	}
}
