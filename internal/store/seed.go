package store

import (
	"time"

	"interntrack/internal/badge"
	"interntrack/internal/model"
)

// Seeded returns a store populated with the demo dataset: one intern,
// one supervisor, one admin, and enough activity to exercise every
// derived view out of the box.
func Seeded() *Memory {
	m := NewMemory()

	m.AddUser(model.User{
		ID:                   "u1",
		Name:                 "Alex Intern",
		Email:                "alex@uni.edu",
		Role:                 model.RoleStudent,
		Avatar:               "https://picsum.photos/seed/alex/200/200",
		TotalHoursRequired:   120,
		AssignedSupervisorID: "u2",
		Institution:          "Tech University",
		Department:           "Computer Science",
		Bio:                  "Aspiring software engineer passionate about full-stack development.",
		Phone:                "+1 (555) 123-4567",
		Hobbies:              []string{"Photography", "Hiking", "Gaming"},
		ProfileSkills:        []string{"React", "TypeScript", "Node.js", "UI Design"},
	})
	m.AddUser(model.User{
		ID:          "u2",
		Name:        "Sarah Supervisor",
		Email:       "sarah@corp.com",
		Role:        model.RoleSupervisor,
		Avatar:      "https://picsum.photos/seed/sarah/200/200",
		Institution: "Tech Corp Inc.",
		Department:  "Engineering Management",
	})
	m.AddUser(model.User{
		ID:          "u3",
		Name:        "Mike Mentor",
		Email:       "mike@techcorp.com",
		Role:        model.RoleAdmin,
		Avatar:      "https://picsum.photos/seed/mike/200/200",
		Institution: "Tech Corp Inc.",
		Department:  "DevOps",
	})

	m.SetBadges(badge.Catalog())
	m.AddUserBadge("u1", badge.EarlyBirdID, mustTime("2025-11-05T10:00:00Z"))
	m.AddUserBadge("u1", badge.ImpactPlayerID, mustTime("2025-11-15T14:30:00Z"))

	m.AddTask(model.Task{
		ID:           "t1",
		Title:        "Setup Development Environment",
		Description:  "Install Node.js, VS Code, and clone the repository.",
		AssignedToID: "u1",
		AssignedByID: "u2",
		Status:       model.TaskCompleted,
		Priority:     model.PriorityHigh,
		DueDate:      "2025-11-01",
		CreatedAt:    mustTime("2025-10-25T00:00:00Z"),
		Deliverable: &model.TaskDeliverable{
			Notes:       "Environment setup complete. Screenshot attached.",
			URL:         "https://example.com/screenshot.png",
			SubmittedAt: mustTime("2025-10-28T10:00:00Z"),
		},
		Feedback: &model.TaskFeedback{
			Type:    model.FeedbackPraise,
			Comment: "Excellent turnaround time.",
			GivenAt: mustTime("2025-10-29T09:00:00Z"),
		},
	})
	m.AddTask(model.Task{
		ID:           "t2",
		Title:        "Database Schema Design",
		Description:  "Draft the initial ER diagram for the new module.",
		AssignedToID: "u1",
		AssignedByID: "u2",
		Status:       model.TaskInProgress,
		Priority:     model.PriorityMedium,
		DueDate:      "2025-11-25",
		CreatedAt:    mustTime("2025-11-20T00:00:00Z"),
	})
	m.AddTask(model.Task{
		ID:           "t3",
		Title:        "API Documentation",
		Description:  "Document the user endpoints using Swagger.",
		AssignedToID: "u1",
		AssignedByID: "u2",
		Status:       model.TaskTodo,
		Priority:     model.PriorityLow,
		DueDate:      "2025-11-30",
		CreatedAt:    mustTime("2025-11-21T00:00:00Z"),
	})
	m.AddTask(model.Task{
		ID:           "t4",
		Title:        "Implement Search Functionality",
		Description:  "Add a search bar to the student dashboard.",
		AssignedToID: "u1",
		AssignedByID: "u2",
		Status:       model.TaskTodo,
		Priority:     model.PriorityHigh,
		DueDate:      "2025-12-15",
		CreatedAt:    mustTime("2025-11-22T00:00:00Z"),
	})

	m.seedLog(model.LogEntry{
		ID:                  "l1",
		StudentID:           "u1",
		Date:                "2025-11-20",
		HoursWorked:         6,
		ActivityDescription: "Worked on the database schema.",
		Challenges:          "Foreign key constraints in the legacy DB.",
		Status:              model.LogApproved,
		SupervisorComment:   "Good start, ask John for help with the legacy DB.",
	})
	m.seedLog(model.LogEntry{
		ID:                  "l2",
		StudentID:           "u1",
		Date:                "2025-11-21",
		HoursWorked:         8,
		ActivityDescription: "Completed the first draft of ERD.",
		Status:              model.LogPending,
	})

	m.AddMeeting(model.Meeting{
		ID:          "mt1",
		Title:       "Weekly Check-in",
		OrganizerID: "u2",
		Date:        "2025-11-25",
		Time:        "14:00",
		Attendees:   []string{"u1", "u2"},
		Link:        "https://meet.google.com/abc-defg-hij",
	})

	m.AddException(model.AttendanceException{
		ID:        "ae1",
		StudentID: model.AllStudents,
		Date:      "2025-11-27",
		Reason:    "Thanksgiving",
		Type:      model.ExceptionHoliday,
	})

	for _, s := range []model.Skill{
		{ID: "s1", Name: "Python Proficiency", Category: "Technical"},
		{ID: "s2", Name: "Agile Methodology", Category: "Business"},
		{ID: "s3", Name: "Public Speaking", Category: "Soft Skill"},
		{ID: "s4", Name: "Data Analysis", Category: "Technical"},
		{ID: "s5", Name: "Team Collaboration", Category: "Soft Skill"},
	} {
		m.AddSkill(s)
	}

	m.AddSkillAssessment(model.SkillAssessment{
		ID: "sa1", StudentID: "u1", RaterID: "u1", Role: model.RoleStudent, Date: "2025-10-01",
		Ratings: []model.SkillRating{{SkillID: "s1", Score: 2}, {SkillID: "s2", Score: 1}, {SkillID: "s3", Score: 3}, {SkillID: "s4", Score: 2}, {SkillID: "s5", Score: 4}},
	})
	m.AddSkillAssessment(model.SkillAssessment{
		ID: "sa2", StudentID: "u1", RaterID: "u2", Role: model.RoleSupervisor, Date: "2025-10-05",
		Ratings: []model.SkillRating{{SkillID: "s1", Score: 2}, {SkillID: "s2", Score: 2}, {SkillID: "s3", Score: 2}, {SkillID: "s4", Score: 2}, {SkillID: "s5", Score: 3}},
	})
	m.AddSkillAssessment(model.SkillAssessment{
		ID: "sa3", StudentID: "u1", RaterID: "u1", Role: model.RoleStudent, Date: "2025-11-20",
		Ratings: []model.SkillRating{{SkillID: "s1", Score: 4}, {SkillID: "s2", Score: 3}, {SkillID: "s3", Score: 3}, {SkillID: "s4", Score: 3}, {SkillID: "s5", Score: 5}},
	})
	m.AddSkillAssessment(model.SkillAssessment{
		ID: "sa4", StudentID: "u1", RaterID: "u2", Role: model.RoleSupervisor, Date: "2025-11-22",
		Ratings: []model.SkillRating{{SkillID: "s1", Score: 4}, {SkillID: "s2", Score: 3}, {SkillID: "s3", Score: 3}, {SkillID: "s4", Score: 3}, {SkillID: "s5", Score: 4}},
	})

	m.AddNotification(model.Notification{
		ID:          "n1",
		RecipientID: model.AllStudents,
		SenderID:    "u2",
		Title:       "Office Closure Reminder",
		Message:     "The office will be closed this Thursday for Thanksgiving.",
		Type:        model.NotifAnnouncement,
		Timestamp:   mustTime("2025-11-24T08:00:00Z"),
	})

	m.AddLeaveRequest(model.LeaveRequest{
		ID:        "lr1",
		StudentID: "u1",
		StartDate: "2025-12-10",
		EndDate:   "2025-12-10",
		Type:      model.LeaveSick,
		Reason:    "Dental appointment",
	})

	return m
}

// seedLog inserts a log keeping its seeded review status, bypassing the
// AddLog reset to PENDING.
func (m *Memory) seedLog(l model.LogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, l)
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
