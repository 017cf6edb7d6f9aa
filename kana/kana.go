// Package kana provides the codec boundary and script-class predicates
// the conversion core treats as a pure, stateless dependency: hiragana/
// katakana/kanji classification, kana-script folding, and legacy
// multibyte<->UTF-8 conversion.
package kana

import "unicode/utf8"

// IsHiragana reports whether r lies in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r lies in the katakana block.
func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsKanji reports whether r lies in the common CJK ideograph block.
func IsKanji(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// KatakanaToHiragana folds katakana code points in s to hiragana,
// leaving everything else untouched.
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// HiraganaToKatakana folds hiragana code points in s to katakana,
// leaving everything else untouched. It is the mirror of
// KatakanaToHiragana, used by the dummy-candidate katakana
// transliteration.
func HiraganaToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x3041 && r <= 0x3096 {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}

// IsCharBoundary reports whether byteOffset falls on a UTF-8 rune
// boundary within s. Lattice construction must only seed nodes at
// such positions.
func IsCharBoundary(s string, byteOffset int) bool {
	if byteOffset == 0 || byteOffset == len(s) {
		return true
	}
	if byteOffset < 0 || byteOffset > len(s) {
		return false
	}
	return utf8.RuneStart(s[byteOffset])
}
