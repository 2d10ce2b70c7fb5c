package format

import "testing"

func TestAmount(t *testing.T) {
	cases := []struct {
		val      float64
		currency string
		want     string
	}{
		{0, "Ar", "0 Ar"},
		{500, "Ar", "500 Ar"},
		{1500, "Ar", "1 500 Ar"},
		{1234567.8, "Ar", "1 234 568 Ar"},
		{-1500, "Ar", "-1 500 Ar"},
		{250000, "", "250 000"},
	}
	for _, c := range cases {
		if got := Amount(c.val, c.currency); got != c.want {
			t.Errorf("Amount(%v, %q) = %q, want %q", c.val, c.currency, got, c.want)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		val  float64
		want string
	}{
		{0, "zéro Ariary"},
		{1, "Un Ariary"},
		{21, "Vingt-et-un Ariary"},
		{100, "Cent Ariary"},
		{567, "Cinq cent soixante-sept Ariary"},
		{1000, "Mille Ariary"},
		{2000, "Deux mille Ariary"},
		{15500, "Quinze mille cinq cent Ariary"},
		{1000000, "Un million Ariary"},
		{1234567, "Un million deux cent trente-quatre mille cinq cent soixante-sept Ariary"},
		{2000000, "Deux millions Ariary"},
	}
	for _, c := range cases {
		if got := AmountInWords(c.val); got != c.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", c.val, got, c.want)
		}
	}
}
