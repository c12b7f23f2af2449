// Package data embeds the reference tables the analysis engine is built on.
package data

import _ "embed"

// PhonemeClasses maps each ARPAbet phoneme to its sonority category,
// one tab-separated pair per line.
//
//go:embed cmudict.phones
var PhonemeClasses []byte

// PhonemeGraphemes maps each phoneme to the letter sequences that can spell it.
//
//go:embed phoneme2grapheme.json
var PhonemeGraphemes []byte
