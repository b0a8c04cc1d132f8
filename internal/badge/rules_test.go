package badge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"interntrack/internal/model"
)

func consecutiveLogs(studentID string, n int) []model.LogEntry {
	logs := make([]model.LogEntry, 0, n)
	for i := 1; i <= n; i++ {
		logs = append(logs, model.LogEntry{
			StudentID: studentID,
			Date:      fmt.Sprintf("2025-01-%02d", i),
		})
	}
	return logs
}

func completedTasks(assignee string, n int) []model.Task {
	tasks := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, model.Task{
			ID:           fmt.Sprintf("t%d", i),
			AssignedToID: assignee,
			Status:       model.TaskCompleted,
		})
	}
	return tasks
}

func TestEarlyBirdAtFiveDayStreak(t *testing.T) {
	require.Empty(t, EvaluateLogAdded("u1", consecutiveLogs("u1", 4), nil))

	awards := EvaluateLogAdded("u1", consecutiveLogs("u1", 5), nil)
	require.Equal(t, []Award{{UserID: "u1", BadgeID: EarlyBirdID}}, awards)
}

func TestEarlyBirdNotReawarded(t *testing.T) {
	held := []model.UserBadge{{UserID: "u1", BadgeID: EarlyBirdID}}
	require.Empty(t, EvaluateLogAdded("u1", consecutiveLogs("u1", 6), held))
}

func TestTaskMasterThreshold(t *testing.T) {
	require.Empty(t, EvaluateTaskCompleted("u1", completedTasks("u1", 9), nil))

	awards := EvaluateTaskCompleted("u1", completedTasks("u1", 10), nil)
	require.Equal(t, []Award{{UserID: "u1", BadgeID: TaskMasterID}}, awards)

	// Replaying the completion event with the badge held is a no-op.
	held := []model.UserBadge{{UserID: "u1", BadgeID: TaskMasterID}}
	require.Empty(t, EvaluateTaskCompleted("u1", completedTasks("u1", 10), held))
}

func TestTaskMasterCountsOnlyAssignee(t *testing.T) {
	tasks := append(completedTasks("u1", 5), completedTasks("u2", 10)...)
	require.Empty(t, EvaluateTaskCompleted("u1", tasks, nil))
}

func TestNetworkingNinjaPerAttendee(t *testing.T) {
	meetings := []model.Meeting{
		{ID: "m1", Attendees: []string{"u1", "u2"}},
		{ID: "m2", Attendees: []string{"u1", "u2"}},
		{ID: "m3", Attendees: []string{"u1"}},
	}

	awards := EvaluateMeetingScheduled([]string{"u1", "u2"}, meetings, nil)
	require.Equal(t, []Award{{UserID: "u1", BadgeID: NetworkingNinjaID}}, awards)

	// u2 reaches three meetings with the next one.
	meetings = append(meetings, model.Meeting{ID: "m4", Attendees: []string{"u2"}})
	held := []model.UserBadge{{UserID: "u1", BadgeID: NetworkingNinjaID}}
	awards = EvaluateMeetingScheduled([]string{"u2"}, meetings, held)
	require.Equal(t, []Award{{UserID: "u2", BadgeID: NetworkingNinjaID}}, awards)
}

func TestImpactPlayerOnPraise(t *testing.T) {
	task := model.Task{ID: "t1", AssignedToID: "u1"}

	awards := EvaluateFeedback(task, model.TaskFeedback{Type: model.FeedbackPraise}, nil)
	require.Equal(t, []Award{{UserID: "u1", BadgeID: ImpactPlayerID}}, awards)

	require.Empty(t, EvaluateFeedback(task, model.TaskFeedback{Type: model.FeedbackGrowth}, nil))

	held := []model.UserBadge{{UserID: "u1", BadgeID: ImpactPlayerID}}
	require.Empty(t, EvaluateFeedback(task, model.TaskFeedback{Type: model.FeedbackPraise}, held))
}

func TestCatalogPointValues(t *testing.T) {
	points := make(map[string]int)
	for _, b := range Catalog() {
		points[b.ID] = b.Points
	}
	require.Equal(t, 50, points[EarlyBirdID])
	require.Equal(t, 100, points[TaskMasterID])
	require.Equal(t, 75, points[NetworkingNinjaID])
	require.Equal(t, 150, points[ImpactPlayerID])
}
