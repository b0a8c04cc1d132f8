// Package skills derives competency growth from dated skill
// assessments: how supervisor ratings moved since the baseline, and how
// far self-assessment diverges from the supervisor's view.
package skills

import (
	"sort"

	"interntrack/internal/model"
)

// Growth is the derived view for a single skill.
type Growth struct {
	SkillID  string `json:"skill_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	// Student is the latest self-rating, Supervisor the latest
	// supervisor rating, Initial the oldest supervisor rating.
	Student    int `json:"student"`
	Supervisor int `json:"supervisor"`
	Initial    int `json:"initial"`
	// Growth is Supervisor - Initial; Gap is Student - Supervisor
	// (positive when the student rates themselves higher).
	Growth int `json:"growth"`
	Gap    int `json:"gap"`
}

// Track computes per-skill growth for one student. Missing ratings and
// unknown skill ids read as zero.
func Track(studentID string, catalog []model.Skill, assessments []model.SkillAssessment) []Growth {
	var student, supervisor []model.SkillAssessment
	for _, a := range assessments {
		if a.StudentID != studentID {
			continue
		}
		switch a.Role {
		case model.RoleStudent:
			student = append(student, a)
		case model.RoleSupervisor:
			supervisor = append(supervisor, a)
		}
	}
	byDateDesc := func(s []model.SkillAssessment) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Date > s[j].Date })
	}
	byDateDesc(student)
	byDateDesc(supervisor)

	var latestStudent, latestSupervisor, initialSupervisor *model.SkillAssessment
	if len(student) > 0 {
		latestStudent = &student[0]
	}
	if len(supervisor) > 0 {
		latestSupervisor = &supervisor[0]
		initialSupervisor = &supervisor[len(supervisor)-1]
	}

	out := make([]Growth, 0, len(catalog))
	for _, sk := range catalog {
		g := Growth{
			SkillID:    sk.ID,
			Name:       sk.Name,
			Category:   sk.Category,
			Student:    ratingFor(latestStudent, sk.ID),
			Supervisor: ratingFor(latestSupervisor, sk.ID),
			Initial:    ratingFor(initialSupervisor, sk.ID),
		}
		g.Growth = g.Supervisor - g.Initial
		g.Gap = g.Student - g.Supervisor
		out = append(out, g)
	}
	return out
}

func ratingFor(a *model.SkillAssessment, skillID string) int {
	if a == nil {
		return 0
	}
	for _, r := range a.Ratings {
		if r.SkillID == skillID {
			return r.Score
		}
	}
	return 0
}
