package validation

import "regexp"

// Subdomain label rules:
// - Lowercase only.
// - Start and end with [a-z0-9].
// - Middle chars may include [a-z0-9-].
// - Length 3..20.
// - Repeated hyphens ("ab--cd") are accepted by the base predicate; callers
//   that want to reject them must opt into ValidSubdomainStrict.
//
// Examples valid: acme, acme-corp, a1b, ab--cd (base predicate only)
// Examples invalid: AB, -acme, acme-, a, ab, 21+ chars, "acme corp", "acmé"
var subdomainRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,18}[a-z0-9]$`)

var doubledHyphen = regexp.MustCompile(`--`)

// ValidSubdomain returns true if the candidate matches the allowed pattern.
// Never panics; the empty string is simply invalid.
func ValidSubdomain(name string) bool {
	return subdomainRe.MatchString(name)
}

// ValidSubdomainStrict is ValidSubdomain plus rejection of consecutive
// hyphens. Kept separate so the permissive behavior stays available where
// existing labels already depend on it.
func ValidSubdomainStrict(name string) bool {
	return subdomainRe.MatchString(name) && !doubledHyphen.MatchString(name)
}
