// Package badge evaluates the fixed achievement rules. Evaluators are
// pure: they inspect post-mutation collections and return the awards
// that are newly due, never creating records or notifications
// themselves. The host applies decisions and is responsible for the
// at-most-once UserBadge invariant.
package badge

import (
	"interntrack/internal/attendance"
	"interntrack/internal/model"
)

// Reference badge ids. The catalog is extendable; these four drive the
// built-in rules.
const (
	EarlyBirdID       = "b1"
	TaskMasterID      = "b2"
	NetworkingNinjaID = "b3"
	ImpactPlayerID    = "b4"
)

// TaskMasterCount is the completed-task total that earns Task Master.
const TaskMasterCount = 10

// NetworkingMeetings is the meeting-membership total that earns
// Networking Ninja.
const NetworkingMeetings = 3

// Award is a decision to grant one badge to one user.
type Award struct {
	UserID  string
	BadgeID string
}

// Catalog returns the built-in badge definitions, matching the seed
// catalog of the host.
func Catalog() []model.Badge {
	return []model.Badge{
		{ID: EarlyBirdID, Name: "The Early Bird", Description: "Completing a time log 5 days in a row.", Icon: "Clock", Color: "amber", Points: 50},
		{ID: TaskMasterID, Name: "Task Master", Description: "Completing 10 tasks ahead of deadline.", Icon: "CheckCircle", Color: "emerald", Points: 100},
		{ID: NetworkingNinjaID, Name: "Networking Ninja", Description: "Attending 3 check-in meetings.", Icon: "Users", Color: "blue", Points: 75},
		{ID: ImpactPlayerID, Name: "Impact Player", Description: "Receiving \"Praise\" feedback on a high-priority project.", Icon: "Star", Color: "purple", Points: 150},
	}
}

// Held reports whether the user already holds the badge.
func Held(userBadges []model.UserBadge, userID, badgeID string) bool {
	for _, ub := range userBadges {
		if ub.UserID == userID && ub.BadgeID == badgeID {
			return true
		}
	}
	return false
}

// EvaluateLogAdded runs after a log entry is recorded. Awards Early
// Bird when the student's consecutive-day streak first reaches five.
func EvaluateLogAdded(studentID string, logs []model.LogEntry, userBadges []model.UserBadge) []Award {
	if Held(userBadges, studentID, EarlyBirdID) {
		return nil
	}
	dates := attendance.LogDates(logs, studentID)
	if !attendance.StreakReached(dates, attendance.StreakThreshold) {
		return nil
	}
	return []Award{{UserID: studentID, BadgeID: EarlyBirdID}}
}

// EvaluateTaskCompleted runs after a task reaches COMPLETED, whether by
// a status update or a deliverable submission. Awards Task Master at
// ten completions for the assignee.
func EvaluateTaskCompleted(assigneeID string, tasks []model.Task, userBadges []model.UserBadge) []Award {
	if Held(userBadges, assigneeID, TaskMasterID) {
		return nil
	}
	completed := 0
	for _, t := range tasks {
		if t.AssignedToID == assigneeID && t.Status == model.TaskCompleted {
			completed++
		}
	}
	if completed < TaskMasterCount {
		return nil
	}
	return []Award{{UserID: assigneeID, BadgeID: TaskMasterID}}
}

// EvaluateMeetingScheduled runs after a meeting is added and checks
// every attendee of the new meeting for Networking Ninja.
func EvaluateMeetingScheduled(attendees []string, meetings []model.Meeting, userBadges []model.UserBadge) []Award {
	var awards []Award
	for _, attendee := range attendees {
		if Held(userBadges, attendee, NetworkingNinjaID) {
			continue
		}
		count := 0
		for _, m := range meetings {
			for _, a := range m.Attendees {
				if a == attendee {
					count++
					break
				}
			}
		}
		if count >= NetworkingMeetings {
			awards = append(awards, Award{UserID: attendee, BadgeID: NetworkingNinjaID})
		}
	}
	return awards
}

// EvaluateFeedback runs after feedback is attached to a task. PRAISE
// awards Impact Player to the assignee immediately; no threshold.
func EvaluateFeedback(task model.Task, fb model.TaskFeedback, userBadges []model.UserBadge) []Award {
	if fb.Type != model.FeedbackPraise {
		return nil
	}
	if Held(userBadges, task.AssignedToID, ImpactPlayerID) {
		return nil
	}
	return []Award{{UserID: task.AssignedToID, BadgeID: ImpactPlayerID}}
}
