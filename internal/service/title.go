package service

import "unicode/utf8"

const titleLength = 20

// DeriveTitle returns content itself when it is at most 20 characters long,
// otherwise its first 20 characters followed by "...".
func DeriveTitle(content string) string {
	if utf8.RuneCountInString(content) <= titleLength {
		return content
	}
	return string([]rune(content)[:titleLength]) + "..."
}
