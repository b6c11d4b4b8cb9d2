package entities

import (
	"regexp"
	"strings"
)

// Precompiled patterns for python_version markers. The order matters: the
// single-character forms do not match their two-character counterparts
// because the captured group must start with a digit.
var (
	markerLT = regexp.MustCompile(`python_version\s*<\s*['"]?(\d+\.\d+)['"]?`)
	markerLE = regexp.MustCompile(`python_version\s*<=\s*['"]?(\d+\.\d+)['"]?`)
	markerGT = regexp.MustCompile(`python_version\s*>\s*['"]?(\d+\.\d+)['"]?`)
	markerGE = regexp.MustCompile(`python_version\s*>=\s*['"]?(\d+\.\d+)['"]?`)
	markerEQ = regexp.MustCompile(`python_version\s*==\s*['"]?(\d+\.\d+)['"]?`)
	markerNE = regexp.MustCompile(`python_version\s*!=\s*['"]?(\d+\.\d+)['"]?`)
)

type markerForm struct {
	pattern  *regexp.Regexp
	evaluate func(target, bound PythonVersion) bool
}

var markerForms = []markerForm{
	{markerLT, func(target, bound PythonVersion) bool { return target.Compare(bound) < 0 }},
	{markerLE, func(target, bound PythonVersion) bool { return target.Compare(bound) <= 0 }},
	{markerGT, func(target, bound PythonVersion) bool { return target.Compare(bound) > 0 }},
	{markerGE, func(target, bound PythonVersion) bool { return target.Compare(bound) >= 0 }},
	{markerEQ, func(target, bound PythonVersion) bool { return target.Compare(bound) == 0 }},
	{markerNE, func(target, bound PythonVersion) bool { return target.Compare(bound) != 0 }},
}

// AppliesTo reports whether the dependency applies to the given Python
// version according to its marker expression.
//
// Markers the evaluator does not recognize (platform checks, complex
// boolean expressions) evaluate to true: assuming applicability is safer
// than silently flagging a still-needed dependency for deletion.
func (it Dependency) AppliesTo(version PythonVersion) bool {
	if it.Markers == "" {
		return true
	}

	marker := strings.TrimSpace(it.Markers)
	for _, form := range markerForms {
		match := form.pattern.FindStringSubmatch(marker)
		if match == nil {
			continue
		}
		bound, err := ParsePythonVersion(match[1])
		if err != nil {
			continue
		}
		return form.evaluate(version, bound)
	}

	return true
}
