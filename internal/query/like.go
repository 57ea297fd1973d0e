package query

import "strings"

// LikeEscape is the escape character stores must declare with ESCAPE.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE metacharacters so term matches literally.
func EscapeLike(term string) string {
	return likeReplacer.Replace(term)
}

// ContainsPattern returns a LIKE pattern matching any value containing
// term, or "" when term is blank.
func ContainsPattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "%" + EscapeLike(term) + "%"
}
