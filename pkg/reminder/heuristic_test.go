package reminder

import "testing"

func TestLooksDatedPositives(t *testing.T) {
	positives := []string{
		"call mom tomorrow",
		"dentist on Friday",
		"meeting at 15:30",
		"release on 12.03",
		"ship it next week",
		"remind me to stretch",
		"встреча завтра",
		"сдать отчет в пятницу",
		"позвонить в 10 утра",
		"напомни про молоко",
		"Напомни позвонить маме",
		"отпуск через 3 дня",
		"deadline January 15",
	}
	for _, text := range positives {
		if !LooksDated(text) {
			t.Errorf("LooksDated(%q) = false, want true", text)
		}
	}
}

func TestLooksDatedNegatives(t *testing.T) {
	negatives := []string{
		"",
		"ok",
		"в",
		"just some prose about nothing",
		"список покупок",
	}
	for _, text := range negatives {
		if LooksDated(text) {
			t.Errorf("LooksDated(%q) = true, want false", text)
		}
	}
}
