// Package text implements posterkit's width-constrained text layout: script
// classification, greedy word wrapping, ellipsis truncation, and alignment
// anchoring for left-to-right and right-to-left writing systems.
//
// The package is backend-free. All width decisions go through the [Measurer]
// capability, which in production is a resolved font handle and in tests a
// deterministic fake. Character reordering is never performed here: shaping
// of right-to-left runs is delegated to the rendering backend, because
// reversing code points would break Arabic ligatures.
package text

import "unicode"

// rtlScripts covers the Arabic script blocks used by Arabic, Persian,
// Kurdish, and Uyghur: Arabic, Arabic Supplement, Arabic Extended-A, and
// both Arabic Presentation Forms blocks.
var rtlScripts = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

// IsRightToLeft reports whether s contains any character from a right-to-left
// script block. A single such character classifies the whole string: mixed
// runs like an Arabic price tag with Latin digits must still lay out
// right-to-left. The empty string is left-to-right.
func IsRightToLeft(s string) bool {
	for _, r := range s {
		if unicode.Is(rtlScripts, r) {
			return true
		}
	}
	return false
}
