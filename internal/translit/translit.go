// Package translit renders Cyrillic (Russian) text in Latin letters so that
// labels typed in either script can be compared by similarity.
package translit

import (
	"strings"
	"unicode"
)

// russian is the reversed ru table of the Python "transliterate" package,
// which catalog names in the tracker were historically spelled with.
var russian = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "'", 'ы': "y", 'ь': "'",
	'э': "e", 'ю': "ju", 'я': "ja",
}

// Func converts text to a Latin approximation. Implementations must
// return the input unchanged when they cannot convert it.
type Func func(string) string

// ToLatin transliterates Russian Cyrillic letters to Latin. Characters
// outside the table (Latin letters, digits, punctuation) pass through.
// Upper-case letters keep their case on the first Latin letter.
func ToLatin(text string) string {
	if !hasCyrillic(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		lower := unicode.ToLower(r)
		latin, ok := russian[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		b.WriteString(latin)
	}
	return b.String()
}

// Safe wraps fn so that a panic inside it degrades to returning the input.
func Safe(fn Func) Func {
	return func(text string) (out string) {
		defer func() {
			if recover() != nil {
				out = text
			}
		}()
		return fn(text)
	}
}

func hasCyrillic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
