package triage

import "github.com/linnemanlabs/gabay/internal/assistant"

// defaultDisclaimers holds the safety disclaimer per severity tier and
// language. Three tiers: ER warning, "needs attention", generic reminder.
func defaultDisclaimers() map[assistant.Urgency]map[assistant.Language]string {
	return map[assistant.Urgency]map[assistant.Language]string{
		assistant.UrgencyER: {
			assistant.English: "Warning: your symptoms may need emergency care. " +
				"Please go to the nearest emergency room or call for help now. " +
				"This is general guidance, not a medical diagnosis.",
			assistant.Tagalog: "Babala: maaaring kailangan ng emergency na atensyon ang iyong mga sintomas. " +
				"Pumunta agad sa pinakamalapit na emergency room o humingi ng tulong. " +
				"Pangkalahatang gabay ito, hindi medikal na diagnosis.",
			assistant.Bikol: "Patanid: an saimong mga sintomas tibaad mangaipo nin emergency na atensyon. " +
				"Magduman tulos sa pinakaharaning emergency room o maghagad nin tabang. " +
				"Pangkagabsan na giya ini, bakong medikal na diagnosis.",
		},
		assistant.UrgencyClinic: {
			assistant.English: "Some of your symptoms need attention. " +
				"Please visit a clinic or health center within the day to get checked. " +
				"This is general guidance, not a medical diagnosis.",
			assistant.Tagalog: "May mga sintomas ka na kailangang matingnan. " +
				"Magpatingin sa clinic o health center sa loob ng araw. " +
				"Pangkalahatang gabay ito, hindi medikal na diagnosis.",
			assistant.Bikol: "Igwa kang mga sintomas na kaipuhan ipahiling. " +
				"Magpakonsulta sa clinic o health center sa laog kan aldaw. " +
				"Pangkagabsan na giya ini, bakong medikal na diagnosis.",
		},
		assistant.UrgencySelfCare: {
			assistant.English: "Reminder: this is general health information, not a medical diagnosis. " +
				"If symptoms persist or worsen, consult a doctor.",
			assistant.Tagalog: "Paalala: pangkalahatang impormasyon ito tungkol sa kalusugan, hindi medikal na diagnosis. " +
				"Kung tumagal o lumala ang sintomas, kumonsulta sa doktor.",
			assistant.Bikol: "Pagiromdom: pangkagabsan na impormasyon ini dapit sa salud, bakong medikal na diagnosis. " +
				"Kun maglawig o gumrabe an sintomas, magkonsulta sa doktor.",
		},
	}
}
