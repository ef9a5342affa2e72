package validator

import "maps"

// SeverityRegistry decides the effective severity of a rule for a pass.
// Returning SeverityIgnore disables the rule.
type SeverityRegistry interface {
	LookupSeverity(meta RuleMeta) Severity
}

// Severities overrides severities by error code. Rules without an entry keep
// their default.
type Severities map[string]Severity

// LookupSeverity implements SeverityRegistry.
func (s Severities) LookupSeverity(meta RuleMeta) Severity {
	if sev, ok := s[meta.Code]; ok {
		return sev
	}
	return meta.Severity
}

// Merge returns a copy of s with other's entries on top.
func (s Severities) Merge(other Severities) Severities {
	out := maps.Clone(s)
	if out == nil {
		out = Severities{}
	}
	maps.Copy(out, other)
	return out
}

type defaultSeverities struct{}

func (defaultSeverities) LookupSeverity(meta RuleMeta) Severity { return meta.Severity }
