// Package tracker coordinates the internship domain: it applies
// mutations to the store, evaluates badge rules on the post-mutation
// state, and dispatches one notification per new award. The three
// stages are kept separate so each is testable on its own.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"interntrack/internal/attendance"
	"interntrack/internal/badge"
	"interntrack/internal/geo"
	"interntrack/internal/leaderboard"
	"interntrack/internal/model"
	"interntrack/internal/notify"
	"interntrack/internal/skills"
	"interntrack/internal/store"
)

// systemSender marks notifications originated by the engine rather
// than a user.
const systemSender = "SYSTEM"

// OutOfRangeError reports a check-in outside the office radius.
type OutOfRangeError struct {
	DistanceKm float64
	MaxKm      float64
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %.2fkm (max allowed: %.2fkm)", e.DistanceKm, e.MaxKm)
}

// Service owns the domain workflow.
type Service struct {
	store  *store.Memory
	queue  notify.Queue
	office geo.Location
	now    func() time.Time
}

// NewService wires the store, notification queue and office geofence.
func NewService(st *store.Memory, q notify.Queue, office geo.Location) *Service {
	return &Service{store: st, queue: q, office: office, now: time.Now}
}

// WithClock overrides the time source; tests pin it for deterministic
// future/past classification.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Store exposes the underlying collections to the host API.
func (s *Service) Store() *store.Memory { return s.store }

// ---- Logs ----

// SubmitLogInput is the host-boundary shape for a new daily log.
type SubmitLogInput struct {
	StudentID           string  `json:"student_id" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	HoursWorked         float64 `json:"hours_worked"`
	ActivityDescription string  `json:"activity_description"`
	Challenges          string  `json:"challenges"`
}

// SubmitLog validates and records a log entry, then checks the Early
// Bird streak on the updated collection.
func (s *Service) SubmitLog(ctx context.Context, in SubmitLogInput) (model.LogEntry, error) {
	if in.HoursWorked < 0 {
		return model.LogEntry{}, errors.New("hours worked must be non-negative")
	}
	if _, err := time.Parse(model.DateLayout, in.Date); err != nil {
		return model.LogEntry{}, fmt.Errorf("invalid date %q: %w", in.Date, err)
	}
	u, err := s.store.GetUser(in.StudentID)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("student %s: %w", in.StudentID, err)
	}
	if u.Role != model.RoleStudent {
		return model.LogEntry{}, errors.New("logs can only be submitted for students")
	}

	entry := s.store.AddLog(model.LogEntry{
		StudentID:           in.StudentID,
		Date:                in.Date,
		HoursWorked:         in.HoursWorked,
		ActivityDescription: in.ActivityDescription,
		Challenges:          in.Challenges,
	})
	logsSubmitted.Inc()

	awards := badge.EvaluateLogAdded(in.StudentID, s.store.Logs(), s.store.UserBadges())
	s.applyAwards(ctx, awards)
	return entry, nil
}

// ReviewLog approves or rejects a pending entry. The decision is
// terminal.
func (s *Service) ReviewLog(_ context.Context, logID string, approved bool, comment string) (model.LogEntry, error) {
	return s.store.ReviewLog(logID, approved, comment)
}

// ---- Tasks ----

func (s *Service) AddTask(_ context.Context, t model.Task) (model.Task, error) {
	if t.Title == "" || t.AssignedToID == "" {
		return model.Task{}, errors.New("task title and assignee required")
	}
	if _, err := s.store.GetUser(t.AssignedToID); err != nil {
		return model.Task{}, fmt.Errorf("assignee %s: %w", t.AssignedToID, err)
	}
	t.Status = model.TaskTodo
	return s.store.AddTask(t), nil
}

// UpdateTaskStatus moves a task through its lifecycle. Reaching
// COMPLETED triggers the Task Master check for the assignee.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus) (model.Task, error) {
	switch status {
	case model.TaskTodo, model.TaskInProgress, model.TaskCompleted, model.TaskOverdue:
	default:
		return model.Task{}, fmt.Errorf("invalid task status %q", status)
	}
	t, err := s.store.SetTaskStatus(taskID, status)
	if err != nil {
		return model.Task{}, err
	}
	if status == model.TaskCompleted {
		awards := badge.EvaluateTaskCompleted(t.AssignedToID, s.store.Tasks(), s.store.UserBadges())
		s.applyAwards(ctx, awards)
	}
	return t, nil
}

// SubmitDeliverable attaches a deliverable, completing the task, and
// runs the same completion check.
func (s *Service) SubmitDeliverable(ctx context.Context, taskID string, d model.TaskDeliverable) (model.Task, error) {
	if d.SubmittedAt.IsZero() {
		d.SubmittedAt = s.now().UTC()
	}
	t, err := s.store.SetTaskDeliverable(taskID, d)
	if err != nil {
		return model.Task{}, err
	}
	awards := badge.EvaluateTaskCompleted(t.AssignedToID, s.store.Tasks(), s.store.UserBadges())
	s.applyAwards(ctx, awards)
	return t, nil
}

// GiveFeedback records supervisor feedback on a task. PRAISE awards
// Impact Player to the assignee.
func (s *Service) GiveFeedback(ctx context.Context, taskID string, fb model.TaskFeedback) (model.Task, error) {
	if fb.Type != model.FeedbackPraise && fb.Type != model.FeedbackGrowth {
		return model.Task{}, fmt.Errorf("invalid feedback type %q", fb.Type)
	}
	if fb.GivenAt.IsZero() {
		fb.GivenAt = s.now().UTC()
	}
	t, err := s.store.SetTaskFeedback(taskID, fb)
	if err != nil {
		return model.Task{}, err
	}
	awards := badge.EvaluateFeedback(t, fb, s.store.UserBadges())
	s.applyAwards(ctx, awards)
	return t, nil
}

// ---- Meetings ----

// ScheduleMeeting adds a meeting and checks every attendee for
// Networking Ninja.
func (s *Service) ScheduleMeeting(ctx context.Context, mt model.Meeting) (model.Meeting, error) {
	if len(mt.Attendees) == 0 {
		return model.Meeting{}, errors.New("meeting needs at least one attendee")
	}
	mt = s.store.AddMeeting(mt)
	awards := badge.EvaluateMeetingScheduled(mt.Attendees, s.store.Meetings(), s.store.UserBadges())
	s.applyAwards(ctx, awards)
	return mt, nil
}

// ---- Check-in ----

// CheckIn gates attendance on the office geofence. The attempt is
// recorded either way; an out-of-range position returns
// OutOfRangeError carrying the computed distance for display.
func (s *Service) CheckIn(_ context.Context, studentID string, lat, lon float64) (model.CheckInEvent, error) {
	if _, err := s.store.GetUser(studentID); err != nil {
		return model.CheckInEvent{}, fmt.Errorf("student %s: %w", studentID, err)
	}
	ok, dist := s.office.WithinRadius(lat, lon)
	evt := s.store.AddCheckIn(model.CheckInEvent{
		StudentID:  studentID,
		When:       s.now().UTC(),
		Latitude:   lat,
		Longitude:  lon,
		DistanceKm: dist,
		InRange:    ok,
	})
	if !ok {
		checkIns.WithLabelValues("out_of_range").Inc()
		return evt, OutOfRangeError{DistanceKm: dist, MaxKm: s.office.RadiusKm}
	}
	checkIns.WithLabelValues("ok").Inc()
	return evt, nil
}

// ---- Exceptions and leave ----

func (s *Service) AddException(_ context.Context, e model.AttendanceException) (model.AttendanceException, error) {
	if e.Type != model.ExceptionExcused && e.Type != model.ExceptionHoliday {
		return model.AttendanceException{}, fmt.Errorf("invalid exception type %q", e.Type)
	}
	if _, err := time.Parse(model.DateLayout, e.Date); err != nil {
		return model.AttendanceException{}, fmt.Errorf("invalid date %q: %w", e.Date, err)
	}
	return s.store.AddException(e), nil
}

func (s *Service) RemoveException(_ context.Context, id string) error {
	return s.store.DeleteException(id)
}

func (s *Service) RequestLeave(_ context.Context, lr model.LeaveRequest) (model.LeaveRequest, error) {
	if _, err := time.Parse(model.DateLayout, lr.StartDate); err != nil {
		return model.LeaveRequest{}, fmt.Errorf("invalid start date %q: %w", lr.StartDate, err)
	}
	if _, err := time.Parse(model.DateLayout, lr.EndDate); err != nil {
		return model.LeaveRequest{}, fmt.Errorf("invalid end date %q: %w", lr.EndDate, err)
	}
	return s.store.AddLeaveRequest(lr), nil
}

// ReviewLeave decides a pending request and notifies the student.
func (s *Service) ReviewLeave(ctx context.Context, id string, approved bool) (model.LeaveRequest, error) {
	lr, err := s.store.ReviewLeave(id, approved)
	if err != nil {
		return model.LeaveRequest{}, err
	}
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	s.dispatch(ctx, model.Notification{
		RecipientID: lr.StudentID,
		SenderID:    systemSender,
		Title:       "Leave Request " + verdict,
		Message:     fmt.Sprintf("Your %s leave request for %s has been %s.", lr.Type, lr.StartDate, verdict),
		Type:        model.NotifInfo,
	})
	return lr, nil
}

// ---- Skills ----

func (s *Service) AddSkillAssessment(_ context.Context, a model.SkillAssessment) (model.SkillAssessment, error) {
	for _, r := range a.Ratings {
		if r.Score < 1 || r.Score > 5 {
			return model.SkillAssessment{}, fmt.Errorf("rating for %s out of range: %d", r.SkillID, r.Score)
		}
	}
	return s.store.AddSkillAssessment(a), nil
}

// SkillGrowth returns the per-skill growth/gap view for a student.
func (s *Service) SkillGrowth(studentID string) []skills.Growth {
	return skills.Track(studentID, s.store.Skills(), s.store.SkillAssessments())
}

// ---- Derived views ----

// Leaderboard ranks all students by badge points plus task bonus.
func (s *Service) Leaderboard() []leaderboard.Row {
	return leaderboard.Standings(s.store.Users(), s.store.UserBadges(), s.store.Badges(), s.store.Tasks())
}

// MonthOverview is the calendar view plus aggregated attendance rate
// for one student's month.
type MonthOverview struct {
	Days  []attendance.Day      `json:"days"`
	Stats attendance.MonthStats `json:"stats"`
}

func (s *Service) AttendanceMonth(studentID string, year int, month time.Month) MonthOverview {
	logs := s.store.LogsForStudent(studentID)
	exceptions := s.store.Exceptions()
	today := s.now()
	return MonthOverview{
		Days:  attendance.MonthDays(year, month, today, logs, exceptions, studentID),
		Stats: attendance.MonthRate(year, month, today, logs, exceptions, studentID),
	}
}

// Announce sends a user-authored notification through the same
// dispatch path the engine uses.
func (s *Service) Announce(ctx context.Context, n model.Notification) model.Notification {
	if n.Type == "" {
		n.Type = model.NotifAnnouncement
	}
	return s.dispatch(ctx, n)
}

// ---- Award application and dispatch ----

// applyAwards turns rule decisions into records and notifications. The
// store enforces at-most-once per (user, badge); a lost race produces
// neither a duplicate record nor a duplicate notification.
func (s *Service) applyAwards(ctx context.Context, awards []badge.Award) {
	for _, a := range awards {
		b, err := s.store.GetBadge(a.BadgeID)
		if err != nil {
			log.Printf("award for unknown badge %s skipped", a.BadgeID)
			continue
		}
		_, created := s.store.AddUserBadge(a.UserID, a.BadgeID, s.now().UTC())
		if !created {
			continue
		}
		badgesAwarded.WithLabelValues(a.BadgeID).Inc()
		s.dispatch(ctx, model.Notification{
			RecipientID: a.UserID,
			SenderID:    systemSender,
			Title:       "Badge Unlocked!",
			Message:     fmt.Sprintf("Congratulations! You've earned the %q badge and %d XP!", b.Name, b.Points),
			Type:        model.NotifInfo,
		})
	}
}

func (s *Service) dispatch(ctx context.Context, n model.Notification) model.Notification {
	n.Timestamp = s.now().UTC()
	n = s.store.AddNotification(n)
	if s.queue != nil {
		if err := s.queue.Publish(ctx, n); err != nil {
			log.Printf("notification publish failed: %v", err)
		}
	}
	return n
}
