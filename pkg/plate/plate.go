package plate

import (
	"errors"
	"strings"
	"unicode"
)

const (
	plateLength = 7
	// posição do caractere que difere entre o padrão Mercosul e o padrão cinza
	mercosulIndex = 4
)

var (
	ErrInvalidPlateLength    = errors.New("license plate must have exactly 7 characters")
	ErrInvalidPlateCharacter = errors.New("license plate has an invalid character at position 5")
)

var mercosulToGray = map[rune]rune{
	'A': '0',
	'B': '1',
	'C': '2',
	'D': '3',
	'E': '4',
	'F': '5',
	'G': '6',
	'H': '7',
	'I': '8',
	'J': '9',
}

// Sanitize removes spaces and hyphens and upper-cases the plate, the same
// way plates typed by users arrive ("abc-1c34" -> "ABC1C34").
func Sanitize(raw string) string {
	p := strings.ToUpper(strings.TrimSpace(raw))
	p = strings.ReplaceAll(p, "-", "")
	return strings.ReplaceAll(p, " ", "")
}

// IsMercosul reports whether the plate uses the newer format, i.e. a letter
// at the fifth position.
func IsMercosul(plate string) bool {
	runes := []rune(plate)
	if len(runes) != plateLength {
		return false
	}
	return unicode.IsLetter(runes[mercosulIndex])
}

// ToLegacyFormat converts a Mercosul plate to the gray format expected by the
// Detran-SP webservice. Plates already in the gray format are returned
// unchanged. Only the fifth character is ever touched.
func ToLegacyFormat(plate string) (string, error) {
	runes := []rune(plate)
	if len(runes) != plateLength {
		return "", ErrInvalidPlateLength
	}

	c := runes[mercosulIndex]
	if !unicode.IsLetter(c) {
		return plate, nil
	}

	digit, ok := mercosulToGray[unicode.ToUpper(c)]
	if !ok {
		return "", ErrInvalidPlateCharacter
	}
	runes[mercosulIndex] = digit

	return string(runes), nil
}
