package classifier

import "testing"

func TestWantsSearch(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"please search for go tutorials", true},
		{"Find trending news about elections", true},
		{"what's happening in nairobi", true},
		{"anything interesting on reddit today?", true},
		{"habari za leo", true},
		{"how do I cook rice", false},
		{"", false},
		{"SEARCH THIS", true}, // 大小写不敏感
	}

	for _, c := range cases {
		if got := WantsSearch(c.text); got != c.want {
			t.Errorf("WantsSearch(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Style
	}{
		{"hello there", StyleEnglish},
		{"sasa bro, poa?", StyleSwahili}, // sasa + bro + poa = 3 次
		{"sasa, how are you", StyleMixed},
		{"niaje msee", StyleMixed},
		{"mambo vipi bro, uko aje?", StyleSwahili},
		{"", StyleEnglish},
		{"SASA BRO POA", StyleSwahili}, // 大小写不敏感
	}

	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestClassify_SubstringSemantics(t *testing.T) {
	// 匹配用的是子串而不是整词，"mambo" 出现在更长的词里也算一次
	if got := Classify("jamambo"); got != StyleMixed {
		t.Errorf("Classify(jamambo) = %v, want mixed", got)
	}
}
