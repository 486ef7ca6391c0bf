package logger

import (
	"log/slog"
	"strings"
)

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"cookie",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks attributes that carry credentials. Values are
// checked first so a bearer header logged under an innocent key is still
// caught; key names then catch the rest.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		v := a.Value.String()
		if masked, ok := maskSensitiveValue(v); ok {
			return slog.String(a.Key, masked)
		}
		if v != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	return a
}

// maskSensitiveValue recognises bearer headers and JWT-shaped strings.
func maskSensitiveValue(v string) (string, bool) {
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return v[:7] + "***", true
	}
	if looksLikeJWT(v) {
		return maskValue(v), true
	}
	return "", false
}

func looksLikeJWT(v string) bool {
	return strings.HasPrefix(v, "eyJ") && strings.Count(v, ".") == 2
}

// maskValue keeps the first and last three characters.
func maskValue(v string) string {
	if len(v) <= 12 {
		return "***"
	}
	return v[:3] + "..." + v[len(v)-3:]
}

// RedactString masks v if it looks like a credential.
func RedactString(v string) string {
	if masked, ok := maskSensitiveValue(v); ok {
		return masked
	}
	return v
}

// IsSensitiveKey checks if a key name suggests sensitive content.
// Keys ending in _fp hold fingerprints and are never sensitive.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if strings.HasSuffix(k, "_fp") {
		return false
	}
	for _, p := range sensitiveKeyPatterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}

// IsSensitiveValue checks if a value appears to be a credential.
func IsSensitiveValue(v string) bool {
	_, ok := maskSensitiveValue(v)
	return ok
}
