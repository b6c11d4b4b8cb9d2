package pyproject

import (
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// ParseRequiresPython resolves a requires-python expression like
// ">=3.9,<3.13" or "^3.10" into the subset of known Python versions that
// satisfy it, in ascending order. An empty expression, and clauses the
// parser does not recognize, constrain nothing: assuming support is safer
// than analyzing no version at all.
func ParseRequiresPython(raw string) []entities.PythonVersion {
	raw = strings.TrimSpace(raw)

	var result []entities.PythonVersion
	for _, version := range entities.KnownPythonVersions {
		if raw == "" || satisfiesAll(version, raw) {
			result = append(result, version)
		}
	}
	return result
}

func satisfiesAll(version entities.PythonVersion, constraints string) bool {
	for _, clause := range strings.Split(constraints, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		if !satisfiesClause(version, clause) {
			return false
		}
	}
	return true
}

func satisfiesClause(version entities.PythonVersion, clause string) bool {
	operator, remainder := splitOperator(clause)

	bound, err := entities.ParsePythonVersion(strings.TrimSuffix(remainder, ".*"))
	if err != nil {
		logger.Debugf("Ignoring unparseable requires-python clause %q", clause)
		return true
	}

	switch operator {
	case ">=":
		return version.Compare(bound) >= 0
	case ">":
		return version.Compare(bound) > 0
	case "<=":
		return version.Compare(bound) <= 0
	case "<":
		return version.Compare(bound) < 0
	case "==":
		return version.Compare(bound) == 0
	case "!=":
		return version.Compare(bound) != 0
	case "~=", "^":
		// Compatible release: at least the bound, same major series.
		return version.Compare(bound) >= 0 && version.Major == bound.Major
	case "~":
		return version.Compare(bound) == 0
	default:
		logger.Debugf("Ignoring unrecognized requires-python clause %q", clause)
		return true
	}
}

func splitOperator(clause string) (string, string) {
	for _, operator := range []string{">=", "<=", "==", "!=", "~=", ">", "<", "^", "~"} {
		if strings.HasPrefix(clause, operator) {
			return operator, strings.TrimSpace(clause[len(operator):])
		}
	}
	return "", clause
}
