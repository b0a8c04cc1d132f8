// Package store owns the in-memory domain collections. All state lives
// here; mutations are serialized by a single mutex so the engine's
// check-then-act award sequence stays safe behind concurrent HTTP
// handlers.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"interntrack/internal/model"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyReviewed is returned when a log or leave decision is
	// replayed; review status is terminal once set.
	ErrAlreadyReviewed = errors.New("already reviewed")
)

// Memory holds every domain collection.
type Memory struct {
	mu sync.RWMutex

	users         []model.User
	logs          []model.LogEntry
	tasks         []model.Task
	meetings      []model.Meeting
	badges        []model.Badge
	userBadges    []model.UserBadge
	exceptions    []model.AttendanceException
	notifications []model.Notification
	skills        []model.Skill
	assessments   []model.SkillAssessment
	checkIns      []model.CheckInEvent
	leaves        []model.LeaveRequest
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

// ---- Users ----

func (m *Memory) Users() []model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.User(nil), m.users...)
}

func (m *Memory) GetUser(id string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) AddUser(u model.User) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.users = append(m.users, u)
	return u
}

func (m *Memory) UpdateUser(u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = u
			return nil
		}
	}
	return ErrNotFound
}

// ---- Logs ----

func (m *Memory) Logs() []model.LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.LogEntry(nil), m.logs...)
}

func (m *Memory) LogsForStudent(studentID string) []model.LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.LogEntry
	for _, l := range m.logs {
		if l.StudentID == studentID {
			out = append(out, l)
		}
	}
	return out
}

// AddLog records a new entry as PENDING and returns it with its id.
func (m *Memory) AddLog(l model.LogEntry) model.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.Status = model.LogPending
	m.logs = append(m.logs, l)
	return l
}

// ReviewLog moves a pending entry to APPROVED or REJECTED. The
// transition is terminal.
func (m *Memory) ReviewLog(id string, approved bool, comment string) (model.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.logs {
		if m.logs[i].ID != id {
			continue
		}
		if m.logs[i].Status != model.LogPending {
			return model.LogEntry{}, ErrAlreadyReviewed
		}
		if approved {
			m.logs[i].Status = model.LogApproved
		} else {
			m.logs[i].Status = model.LogRejected
		}
		m.logs[i].SupervisorComment = comment
		return m.logs[i], nil
	}
	return model.LogEntry{}, ErrNotFound
}

// ---- Tasks ----

func (m *Memory) Tasks() []model.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Task(nil), m.tasks...)
}

func (m *Memory) GetTask(id string) (model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (m *Memory) AddTask(t model.Task) model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = model.TaskTodo
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *Memory) SetTaskStatus(id string, status model.TaskStatus) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Status = status
			return m.tasks[i], nil
		}
	}
	return model.Task{}, ErrNotFound
}

// SetTaskDeliverable attaches a deliverable and completes the task.
func (m *Memory) SetTaskDeliverable(id string, d model.TaskDeliverable) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Deliverable = &d
			m.tasks[i].Status = model.TaskCompleted
			return m.tasks[i], nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (m *Memory) SetTaskFeedback(id string, fb model.TaskFeedback) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Feedback = &fb
			return m.tasks[i], nil
		}
	}
	return model.Task{}, ErrNotFound
}

// ---- Meetings ----

func (m *Memory) Meetings() []model.Meeting {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Meeting(nil), m.meetings...)
}

func (m *Memory) AddMeeting(mt model.Meeting) model.Meeting {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mt.ID == "" {
		mt.ID = uuid.NewString()
	}
	m.meetings = append(m.meetings, mt)
	return mt
}

// ---- Badges ----

func (m *Memory) Badges() []model.Badge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Badge(nil), m.badges...)
}

func (m *Memory) GetBadge(id string) (model.Badge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.badges {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Badge{}, ErrNotFound
}

func (m *Memory) SetBadges(badges []model.Badge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badges = append([]model.Badge(nil), badges...)
}

func (m *Memory) UserBadges() []model.UserBadge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.UserBadge(nil), m.userBadges...)
}

// AddUserBadge grants a badge once. The existence check and insert run
// under one lock, keeping the award idempotent; ok is false when the
// user already held it.
func (m *Memory) AddUserBadge(userID, badgeID string, earnedAt time.Time) (model.UserBadge, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ub := range m.userBadges {
		if ub.UserID == userID && ub.BadgeID == badgeID {
			return ub, false
		}
	}
	ub := model.UserBadge{
		ID:       uuid.NewString(),
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: earnedAt,
	}
	m.userBadges = append(m.userBadges, ub)
	return ub, true
}

// ---- Attendance exceptions ----

func (m *Memory) Exceptions() []model.AttendanceException {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.AttendanceException(nil), m.exceptions...)
}

func (m *Memory) AddException(e model.AttendanceException) model.AttendanceException {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.exceptions = append(m.exceptions, e)
	return e
}

func (m *Memory) DeleteException(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.exceptions {
		if m.exceptions[i].ID == id {
			m.exceptions = append(m.exceptions[:i], m.exceptions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ---- Notifications ----

// NotificationsFor returns the user's feed, broadcast entries included,
// newest first.
func (m *Memory) NotificationsFor(userID string) []model.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Notification
	for i := len(m.notifications) - 1; i >= 0; i-- {
		n := m.notifications[i]
		if n.RecipientID == model.AllStudents || n.RecipientID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (m *Memory) AddNotification(n model.Notification) model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	m.notifications = append(m.notifications, n)
	return n
}

func (m *Memory) MarkNotificationRead(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// ---- Skills ----

func (m *Memory) Skills() []model.Skill {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Skill(nil), m.skills...)
}

func (m *Memory) AddSkill(s model.Skill) model.Skill {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.skills = append(m.skills, s)
	return s
}

func (m *Memory) SkillAssessments() []model.SkillAssessment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.SkillAssessment(nil), m.assessments...)
}

func (m *Memory) AddSkillAssessment(a model.SkillAssessment) model.SkillAssessment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.assessments = append(m.assessments, a)
	return a
}

// ---- Check-ins ----

func (m *Memory) CheckIns(studentID string) []model.CheckInEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.CheckInEvent
	for _, c := range m.checkIns {
		if studentID == "" || c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out
}

func (m *Memory) AddCheckIn(c model.CheckInEvent) model.CheckInEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.When.IsZero() {
		c.When = time.Now().UTC()
	}
	m.checkIns = append(m.checkIns, c)
	return c
}

// ---- Leave requests ----

func (m *Memory) LeaveRequests() []model.LeaveRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.LeaveRequest(nil), m.leaves...)
}

func (m *Memory) AddLeaveRequest(lr model.LeaveRequest) model.LeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lr.ID == "" {
		lr.ID = uuid.NewString()
	}
	lr.Status = model.LeavePending
	m.leaves = append(m.leaves, lr)
	return lr
}

func (m *Memory) ReviewLeave(id string, approved bool) (model.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.leaves {
		if m.leaves[i].ID != id {
			continue
		}
		if m.leaves[i].Status != model.LeavePending {
			return model.LeaveRequest{}, ErrAlreadyReviewed
		}
		if approved {
			m.leaves[i].Status = model.LeaveApproved
		} else {
			m.leaves[i].Status = model.LeaveRejected
		}
		return m.leaves[i], nil
	}
	return model.LeaveRequest{}, ErrNotFound
}
