package email

import (
	"fmt"
	"strings"
)

// Normalize trims and lowercases an address so it can serve as a dedup key.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LooksValid is a shape check only: one '@' with a non-empty local part and domain.
func LooksValid(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.IndexByte(email[at+1:], '@') < 0
}

// FileStem turns an address into a file name stem. Lowercase letters, digits
// and "@.+-" pass through; every other byte, '_' included, becomes "_xx" in
// hex. Distinct normalized addresses therefore never share a stem.
func FileStem(email string) string {
	normalized := Normalize(email)
	var b strings.Builder
	b.Grow(len(normalized))
	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		if stemSafe(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "_%02x", c)
	}
	return b.String()
}

func stemSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '@', c == '.', c == '+', c == '-':
		return true
	}
	return false
}
