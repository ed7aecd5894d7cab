package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testProjects() []Project {
	now := time.Now().UTC()
	return []Project{
		{
			ID: "p1", Title: "FPGA accelerator", Description: "Hardware design work",
			FacultyName: "Dr. Mehta", SkillsRequired: []string{"Verilog", "FPGA"},
			CreatedAt: now.Add(-4 * time.Hour),
		},
		{
			ID: "p2", Title: "Speech enhancement", Description: "Deep learning for audio",
			FacultyName: "Dr. Rao", SkillsRequired: []string{"Python", "ML"},
			CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID: "p3", Title: "Antenna array design", Description: "mmWave beamforming",
			FacultyName: "Dr. Mehta", SkillsRequired: []string{"MATLAB"},
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID: "p4", Title: "Edge ML deployment", Description: "Quantization on microcontrollers",
			FacultyName: "Dr. Singh", SkillsRequired: []string{"ML", "C"},
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID: "p5", Title: "Channel coding", Description: "LDPC decoder implementation",
			FacultyName: "Dr. Rao", SkillsRequired: []string{"matlab", "C"},
			CreatedAt: now,
		},
	}
}

func ids(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	projects := testProjects()

	tests := []struct {
		name   string
		search string
		skill  string
		want   []string
	}{
		{name: "no filters", want: []string{"p1", "p2", "p3", "p4", "p5"}},
		{name: "all skills sentinel", skill: AllSkills, want: []string{"p1", "p2", "p3", "p4", "p5"}},
		{name: "skill exact", skill: "ML", want: []string{"p2", "p4"}},
		{name: "skill is case sensitive", skill: "matlab", want: []string{"p5"}},
		{name: "skill unknown", skill: "Rust", want: []string{}},
		{name: "search title", search: "antenna", want: []string{"p3"}},
		{name: "search description", search: "beamforming", want: []string{"p3"}},
		{name: "search faculty name", search: "mehta", want: []string{"p1", "p3"}},
		{name: "search skill substring", search: "veri", want: []string{"p1"}},
		{name: "search is case insensitive", search: "FPGA ACCEL", want: []string{"p1"}},
		{name: "search and skill combined", search: "rao", skill: "C", want: []string{"p5"}},
		{name: "search no match", search: "quantum", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(projects, tt.search, tt.skill)))
		})
	}
}

func TestSkills(t *testing.T) {
	got := Skills(testProjects())
	// distinct, sorted; "MATLAB" and "matlab" are distinct tags
	assert.Equal(t, []string{"C", "FPGA", "MATLAB", "ML", "Python", "Verilog", "matlab"}, got)
	assert.Nil(t, Skills(nil))
}

func TestSortNewestFirst(t *testing.T) {
	projects := testProjects()
	SortNewestFirst(projects)
	assert.Equal(t, []string{"p5", "p4", "p3", "p2", "p1"}, ids(projects))
}
