package service

import "strings"

// transliteration maps Cyrillic letters onto a Latin spelling so that a
// user typing on a Latin keyboard still gets group-name completions.
var transliteration = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "'", 'ы': "i", 'ь': "'", 'э': "e", 'ю': "yu", 'я': "ya",
	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g",
}

// Transliterate lowercases the input and replaces every known Cyrillic
// letter with its Latin spelling; everything else passes through.
func Transliterate(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if latin, ok := transliteration[r]; ok {
			b.WriteString(latin)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchesGroup reports whether the group name completes the query, either
// literally or through transliteration.
func matchesGroup(group, query string) bool {
	if query == "" {
		return true
	}
	groupLower := strings.ToLower(group)
	queryLower := strings.ToLower(query)
	if strings.HasPrefix(groupLower, queryLower) {
		return true
	}
	return strings.HasPrefix(Transliterate(groupLower), Transliterate(queryLower))
}
