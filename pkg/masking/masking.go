// Package masking normalises raw keystrokes the way the registration form
// does while the user types. Masks are applied on input, never during
// validation, so a value submitted without going through them is still
// rejected by the validator.
package masking

import (
	"strings"
	"unicode/utf8"
)

const (
	// MobileDigits is the maximum number of digits kept in a mobile number.
	MobileDigits = 10
	// ExtensionLength is the maximum length of an extension, including '#'.
	ExtensionLength = 5
	// MaxCJKChars is the number of CJK characters allowed in a name.
	MaxCJKChars = 5
	// EmailDomain is appended to the email prefix.
	EmailDomain = "@bwnet.com.tw"
)

// Mask transforms a raw input value.
type Mask func(string) string

// Mobile strips every non-digit and keeps at most MobileDigits digits. No
// prefix is added.
func Mobile(raw string) string {
	var b strings.Builder
	count := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		if count == MobileDigits {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

// Extension forces a leading '#', drops everything that is not '#' or a digit
// and truncates to ExtensionLength characters.
func Extension(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "#") {
		raw = "#" + raw
	}
	var b strings.Builder
	for _, r := range raw {
		if r == '#' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > ExtensionLength {
		out = out[:ExtensionLength]
	}
	return out
}

// Name cuts the value right before the (MaxCJKChars+1)th CJK character.
func Name(raw string) string {
	count := 0
	for idx, r := range raw {
		if !IsCJK(r) {
			continue
		}
		count++
		if count > MaxCJKChars {
			return raw[:idx]
		}
	}
	return raw
}

// Email composes the full address from the user-typed prefix.
func Email(prefix string) string {
	return prefix + EmailDomain
}

// IsCJK reports whether r falls in the U+4E00..U+9FA5 range counted by the
// name rule.
func IsCJK(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fa5
}

// CountCJK counts the CJK characters in value.
func CountCJK(value string) int {
	count := 0
	for len(value) > 0 {
		r, size := utf8.DecodeRuneInString(value)
		if IsCJK(r) {
			count++
		}
		value = value[size:]
	}
	return count
}

// ForField returns the mask registered for a registration field name, or nil.
func ForField(name string) Mask {
	switch name {
	case "mobile":
		return Mobile
	case "extension":
		return Extension
	case "name":
		return Name
	default:
		return nil
	}
}
