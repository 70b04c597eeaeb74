package parser

import "regexp"

// Signature recognizes one missing-dependency error format. The first
// capture group must yield the missing module name. The set is data, not a
// constant: other ecosystems' dependency-error formats plug in here.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultSignatures returns the pytest/pip signature set.
func DefaultSignatures() []Signature {
	return []Signature{
		{
			Name:    "module-not-found",
			Pattern: regexp.MustCompile(`ModuleNotFoundError: No module named '([^']+)'`),
		},
		{
			Name:    "import-error",
			Pattern: regexp.MustCompile(`ImportError: .* from '([^']+)'`),
		},
	}
}
