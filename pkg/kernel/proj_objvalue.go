package kernel

import (
	"strings"
	"unicode"
)

// Email is stored lower-cased and trimmed
type Email string

func NewEmail(s string) Email     { return Email(strings.ToLower(strings.TrimSpace(s))) }
func (e Email) String() string    { return string(e) }
func (e Email) IsEmpty() bool     { return strings.TrimSpace(string(e)) == "" }
func (e Email) Normalized() Email { return NewEmail(string(e)) }

// IsValid performs a shallow shape check; delivery is never verified
func (e Email) IsValid() bool {
	s := string(e.Normalized())
	at := strings.LastIndex(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(s, " \t\n")
}

type Phone string

func (p Phone) String() string { return string(p) }
func (p Phone) IsEmpty() bool  { return strings.TrimSpace(string(p)) == "" }

// Digits strips everything but decimal digits
func (p Phone) Digits() string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, string(p))
}

type FirstName string

func (n FirstName) String() string { return string(n) }

type LastName string

func (n LastName) String() string { return string(n) }

// FullName joins first and last name
func FullName(first FirstName, last LastName) string {
	return strings.TrimSpace(string(first) + " " + string(last))
}

// BucketURL is the public location of an object in file storage
type BucketURL string

func (b BucketURL) String() string { return string(b) }

// IsHexColor validates #rgb and #rrggbb colors
func IsHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}
