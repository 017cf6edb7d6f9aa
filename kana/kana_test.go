package kana

import "testing"

func TestScriptPredicates(t *testing.T) {
	cases := []struct {
		r          rune
		hira, kata, kanji bool
	}{
		{'あ', true, false, false},
		{'ア', false, true, false},
		{'田', false, false, true},
		{'A', false, false, false},
	}
	for _, c := range cases {
		if got := IsHiragana(c.r); got != c.hira {
			t.Errorf("IsHiragana(%q) = %v, want %v", c.r, got, c.hira)
		}
		if got := IsKatakana(c.r); got != c.kata {
			t.Errorf("IsKatakana(%q) = %v, want %v", c.r, got, c.kata)
		}
		if got := IsKanji(c.r); got != c.kanji {
			t.Errorf("IsKanji(%q) = %v, want %v", c.r, got, c.kanji)
		}
	}
}

func TestKanaFolding(t *testing.T) {
	if got := KatakanaToHiragana("アキタケン"); got != "あきたけん" {
		t.Errorf("KatakanaToHiragana = %q", got)
	}
	if got := HiraganaToKatakana("あきたけん"); got != "アキタケン" {
		t.Errorf("HiraganaToKatakana = %q", got)
	}
	// Round trip.
	s := "わたしのなまえ"
	if got := KatakanaToHiragana(HiraganaToKatakana(s)); got != s {
		t.Errorf("round trip = %q, want %q", got, s)
	}
}

func TestIsCharBoundary(t *testing.T) {
	s := "あか" // 3 bytes each
	for _, off := range []int{0, 3, 6} {
		if !IsCharBoundary(s, off) {
			t.Errorf("IsCharBoundary(%d) = false, want true", off)
		}
	}
	for _, off := range []int{1, 2, 4, 5} {
		if IsCharBoundary(s, off) {
			t.Errorf("IsCharBoundary(%d) = true, want false", off)
		}
	}
}

func TestUnsupportedEncoding(t *testing.T) {
	if _, err := ToUTF8FromLegacy("ebcdic", []byte("x")); err != ErrEncodingUnsupported {
		t.Errorf("ToUTF8FromLegacy error = %v, want ErrEncodingUnsupported", err)
	}
	if _, err := FromUTF8ToLegacy("ebcdic", "x"); err != ErrEncodingUnsupported {
		t.Errorf("FromUTF8ToLegacy error = %v, want ErrEncodingUnsupported", err)
	}
}

func TestShiftJISRoundTrip(t *testing.T) {
	s := "あ"
	enc, err := FromUTF8ToLegacy("shift_jis", s)
	if err != nil {
		t.Fatalf("FromUTF8ToLegacy: %v", err)
	}
	back, err := ToUTF8FromLegacy("shift_jis", enc)
	if err != nil {
		t.Fatalf("ToUTF8FromLegacy: %v", err)
	}
	if back != s {
		t.Errorf("round trip = %q, want %q", back, s)
	}
}
