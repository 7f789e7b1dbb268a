package matching

import (
	"math"
	"strings"
)

// SkillScore returns the fraction of required skills the candidate satisfies,
// as a rounded percentage. Comparison is case-insensitive and
// substring-tolerant in both directions, so "first aid" matches
// "first-aid certified" and vice versa.
//
// This is a required-skill-coverage metric, not a precision metric: an
// over-qualified candidate scores the same as a minimally qualified one.
func SkillScore(candidateSkills, requiredSkills []string) int {
	if len(requiredSkills) == 0 {
		return 100
	}
	if len(candidateSkills) == 0 {
		return 0
	}

	matched := 0
	for _, required := range requiredSkills {
		for _, skill := range candidateSkills {
			if skillsMatch(skill, required) {
				matched++
				break
			}
		}
	}

	return int(math.Round(float64(matched) / float64(len(requiredSkills)) * 100))
}

func skillsMatch(skill, required string) bool {
	s := strings.ToLower(strings.TrimSpace(skill))
	r := strings.ToLower(strings.TrimSpace(required))
	if s == "" || r == "" {
		return false
	}
	return strings.Contains(s, r) || strings.Contains(r, s)
}
