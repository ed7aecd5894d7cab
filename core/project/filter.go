package project

import (
	"sort"
	"strings"
)

// AllSkills is the skill-filter value that disables skill filtering.
const AllSkills = "All Skills"

// SortNewestFirst orders projects by CreatedAt descending in place. The
// docstore gives no ordering guarantee, so every listing goes through this.
func SortNewestFirst(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}

// Skills returns the distinct skill tags across projects, sorted
// lexicographically, for the filter control.
func Skills(projects []Project) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, p := range projects {
		for _, s := range p.SkillsRequired {
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}
	}
	sort.Strings(skills)
	return skills
}

// Filter keeps the projects matching both predicates: the skill filter
// (disabled by AllSkills, otherwise a case-sensitive exact membership test)
// and the search text (case-insensitive substring of title, description,
// faculty name or any skill).
func Filter(projects []Project, search, skill string) []Project {
	filtered := make([]Project, 0, len(projects))
	search = strings.ToLower(strings.TrimSpace(search))
	for _, p := range projects {
		if skill != "" && skill != AllSkills && !hasSkill(p, skill) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func hasSkill(p Project, skill string) bool {
	for _, s := range p.SkillsRequired {
		if s == skill {
			return true
		}
	}
	return false
}

func matchesSearch(p Project, search string) bool {
	if strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.FacultyName), search) {
		return true
	}
	for _, s := range p.SkillsRequired {
		if strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}
