package utils

import (
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// NormalizeDomain lowercases and trims a domain name
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// IsValidDomain reports whether s looks like a fully qualified domain name
func IsValidDomain(s string) bool {
	s = NormalizeDomain(s)
	if len(s) < 3 || len(s) > 253 {
		return false
	}
	return domainPattern.MatchString(s)
}

// SplitDomain splits a full domain into name and extension.
// Multi-part extensions like "co.uk" stay together: "shop.co.uk" -> ("shop", "co.uk").
func SplitDomain(fullDomain string) (name, extension string) {
	fullDomain = NormalizeDomain(fullDomain)
	parts := strings.SplitN(fullDomain, ".", 2)
	if len(parts) < 2 {
		return fullDomain, ""
	}
	return parts[0], parts[1]
}

// JoinDomain builds a full domain from name and extension
func JoinDomain(name, extension string) string {
	extension = strings.TrimPrefix(extension, ".")
	return NormalizeDomain(name + "." + extension)
}
