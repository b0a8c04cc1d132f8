package model

import "time"

// DateLayout is the calendar-day format used across the domain.
// Logs, exceptions, meetings and assessments key on whole days.
const DateLayout = "2006-01-02"

// AllStudents is the sentinel recipient/subject meaning every student.
const AllStudents = "ALL"

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAdmin      Role = "ADMIN"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskOverdue    TaskStatus = "OVERDUE"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

type LogStatus string

const (
	LogPending  LogStatus = "PENDING"
	LogApproved LogStatus = "APPROVED"
	LogRejected LogStatus = "REJECTED"
)

type FeedbackType string

const (
	FeedbackPraise FeedbackType = "PRAISE"
	FeedbackGrowth FeedbackType = "GROWTH"
)

type ExceptionType string

const (
	ExceptionExcused ExceptionType = "EXCUSED"
	ExceptionHoliday ExceptionType = "HOLIDAY"
)

type NotificationType string

const (
	NotifAnnouncement NotificationType = "ANNOUNCEMENT"
	NotifAlert        NotificationType = "ALERT"
	NotifInfo         NotificationType = "INFO"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

type LeaveType string

const (
	LeaveSick            LeaveType = "SICK"
	LeaveVacation        LeaveType = "VACATION"
	LeavePersonal        LeaveType = "PERSONAL"
	LeaveUniversityEvent LeaveType = "UNIVERSITY_EVENT"
)

// User is a student, supervisor or admin account.
type User struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Role                 Role     `json:"role"`
	Avatar               string   `json:"avatar,omitempty"`
	TotalHoursRequired   int      `json:"total_hours_required,omitempty"`
	AssignedSupervisorID string   `json:"assigned_supervisor_id,omitempty"`
	Institution          string   `json:"institution,omitempty"`
	Department           string   `json:"department,omitempty"`
	Bio                  string   `json:"bio,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	Hobbies              []string `json:"hobbies,omitempty"`
	ProfileSkills        []string `json:"profile_skills,omitempty"`
}

// LogEntry is a single day's self-reported work record.
// Status transitions PENDING -> APPROVED|REJECTED and is then terminal.
type LogEntry struct {
	ID                  string    `json:"id"`
	StudentID           string    `json:"student_id"`
	Date                string    `json:"date"`
	HoursWorked         float64   `json:"hours_worked"`
	ActivityDescription string    `json:"activity_description"`
	Challenges          string    `json:"challenges,omitempty"`
	Status              LogStatus `json:"status"`
	SupervisorComment   string    `json:"supervisor_comment,omitempty"`
}

// TaskDeliverable is the artifact submitted to close a task.
type TaskDeliverable struct {
	URL         string    `json:"url,omitempty"`
	Notes       string    `json:"notes"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TaskFeedback is supervisor feedback attached to a task.
type TaskFeedback struct {
	Type    FeedbackType `json:"type"`
	Comment string       `json:"comment"`
	GivenAt time.Time    `json:"given_at"`
}

type Task struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	AssignedToID string           `json:"assigned_to_id"`
	AssignedByID string           `json:"assigned_by_id"`
	Status       TaskStatus       `json:"status"`
	Priority     TaskPriority     `json:"priority"`
	DueDate      string           `json:"due_date"`
	CreatedAt    time.Time        `json:"created_at"`
	Deliverable  *TaskDeliverable `json:"deliverable,omitempty"`
	Feedback     *TaskFeedback    `json:"feedback,omitempty"`
}

type Meeting struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	OrganizerID string   `json:"organizer_id"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Attendees   []string `json:"attendees"`
	Link        string   `json:"link,omitempty"`
}

// Badge is a static catalog entry. Icon and color are display metadata
// with no behavioral contract.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Points      int    `json:"points"`
}

// UserBadge records one earned badge. At most one exists per
// (user, badge) pair.
type UserBadge struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

// AttendanceException marks a date as excused or a holiday. StudentID
// may be AllStudents for a global exception.
type AttendanceException struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	Date      string        `json:"date"`
	Reason    string        `json:"reason"`
	Type      ExceptionType `json:"type"`
}

type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	SenderID    string           `json:"sender_id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	Timestamp   time.Time        `json:"timestamp"`
	Read        bool             `json:"read"`
}

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type SkillRating struct {
	SkillID string `json:"skill_id"`
	Score   int    `json:"score"`
}

// SkillAssessment is a dated set of 1-5 ratings submitted by either the
// student or the supervisor.
type SkillAssessment struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	RaterID   string        `json:"rater_id"`
	Role      Role          `json:"role"`
	Date      string        `json:"date"`
	Ratings   []SkillRating `json:"ratings"`
}

// CheckInEvent records a geofenced check-in attempt.
type CheckInEvent struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	When       time.Time `json:"when"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DistanceKm float64   `json:"distance_km"`
	InRange    bool      `json:"in_range"`
}

type LeaveRequest struct {
	ID        string      `json:"id"`
	StudentID string      `json:"student_id"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Type      LeaveType   `json:"type"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status"`
}
