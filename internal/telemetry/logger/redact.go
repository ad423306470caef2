package logger

import (
	"log/slog"
	"strings"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"key",
	"credential",
	"auth",
	"bearer",
}

// base64TokenLengths are the Base64 RawURL lengths of 16, 32 and 64 byte tokens.
var base64TokenLengths = map[int]bool{22: true, 43: true, 86: true}

// hexTokenLengths are the hex lengths of 16, 32 and 64 byte tokens.
var hexTokenLengths = map[int]bool{32: true, 64: true, 128: true}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

type redactor struct {
	keys []string
}

func newRedactor(extra []string) redactor {
	keys := make([]string, 0, len(sensitiveKeyPatterns)+len(extra))
	keys = append(keys, sensitiveKeyPatterns...)
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keys = append(keys, k)
		}
	}
	return redactor{keys: keys}
}

// attr redacts a single attribute, recursing into groups.
func (r redactor) attr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s == "" {
			return a
		}
		// Value shape wins over key name so that tokens under innocent keys
		// are still caught.
		if LooksLikeToken(s) {
			return slog.String(a.Key, RedactString(s))
		}
		if r.sensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = r.attr(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

func (r redactor) sensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range r.keys {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// RedactString partially masks a value, keeping 2 characters at each end.
// Values shorter than 32 characters are fully masked.
func RedactString(value string) string {
	if len(value) < 32 {
		return "***"
	}
	return value[:2] + "..." + value[len(value)-2:]
}

// LooksLikeToken reports whether value has the shape of a 16, 32 or 64 byte
// token in Base64 RawURL or hex.
func LooksLikeToken(value string) bool {
	switch {
	case base64TokenLengths[len(value)]:
		return allBytes(value, isBase64URL)
	case hexTokenLengths[len(value)]:
		return allBytes(value, isHex)
	default:
		return false
	}
}

func allBytes(s string, ok func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !ok(s[i]) {
			return false
		}
	}
	return true
}

func isBase64URL(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
