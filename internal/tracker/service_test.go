package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"interntrack/internal/badge"
	"interntrack/internal/geo"
	"interntrack/internal/model"
	"interntrack/internal/notify"
	"interntrack/internal/store"
)

var testOffice = geo.Location{Latitude: 0.32936393472140163, Longitude: 32.614417541438584, RadiusKm: 0.5}

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.NewMemory()
	st.AddUser(model.User{ID: "u1", Name: "Alex Intern", Role: model.RoleStudent})
	st.AddUser(model.User{ID: "u2", Name: "Sarah Supervisor", Role: model.RoleSupervisor})
	st.SetBadges(badge.Catalog())

	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return NewService(st, notify.NewInMemory(64), testOffice).
		WithClock(func() time.Time { return clock })
}

func badgeCount(t *testing.T, s *Service, userID, badgeID string) int {
	t.Helper()
	count := 0
	for _, ub := range s.Store().UserBadges() {
		if ub.UserID == userID && ub.BadgeID == badgeID {
			count++
		}
	}
	return count
}

func unlockNotifications(t *testing.T, s *Service, userID string) int {
	t.Helper()
	count := 0
	for _, n := range s.Store().NotificationsFor(userID) {
		if n.Title == "Badge Unlocked!" {
			count++
		}
	}
	return count
}

func TestSubmitLogValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "2025-03-02", HoursWorked: -1})
	require.Error(t, err)

	_, err = svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "not-a-date", HoursWorked: 4})
	require.Error(t, err)

	_, err = svc.SubmitLog(ctx, SubmitLogInput{StudentID: "missing", Date: "2025-03-02", HoursWorked: 4})
	require.ErrorIs(t, err, store.ErrNotFound)

	// Supervisors do not submit daily logs.
	_, err = svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u2", Date: "2025-03-02", HoursWorked: 4})
	require.Error(t, err)

	entry, err := svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "2025-03-02", HoursWorked: 6})
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.Equal(t, model.LogPending, entry.Status)
}

func TestEarlyBirdAwardedOnceWithOneNotification(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 2; i <= 5; i++ {
		_, err := svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: fmt.Sprintf("2025-03-%02d", i), HoursWorked: 8})
		require.NoError(t, err)
	}
	require.Zero(t, badgeCount(t, svc, "u1", badge.EarlyBirdID))

	_, err := svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "2025-03-06", HoursWorked: 8})
	require.NoError(t, err)
	require.Equal(t, 1, badgeCount(t, svc, "u1", badge.EarlyBirdID))
	require.Equal(t, 1, unlockNotifications(t, svc, "u1"))

	// A sixth consecutive day re-evaluates the rule but must not
	// re-award or re-notify.
	_, err = svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "2025-03-07", HoursWorked: 8})
	require.NoError(t, err)
	require.Equal(t, 1, badgeCount(t, svc, "u1", badge.EarlyBirdID))
	require.Equal(t, 1, unlockNotifications(t, svc, "u1"))
}

func TestTaskMasterAtTenCompletionsReplaySafe(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 10; i++ {
		task, err := svc.AddTask(ctx, model.Task{Title: fmt.Sprintf("task %d", i), AssignedToID: "u1", AssignedByID: "u2"})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	for i := 0; i < 9; i++ {
		_, err := svc.UpdateTaskStatus(ctx, ids[i], model.TaskCompleted)
		require.NoError(t, err)
	}
	require.Zero(t, badgeCount(t, svc, "u1", badge.TaskMasterID))

	_, err := svc.UpdateTaskStatus(ctx, ids[9], model.TaskCompleted)
	require.NoError(t, err)
	require.Equal(t, 1, badgeCount(t, svc, "u1", badge.TaskMasterID))

	// Replaying the completion event changes nothing.
	_, err = svc.UpdateTaskStatus(ctx, ids[9], model.TaskCompleted)
	require.NoError(t, err)
	require.Equal(t, 1, badgeCount(t, svc, "u1", badge.TaskMasterID))
	require.Equal(t, 1, unlockNotifications(t, svc, "u1"))
}

func TestDeliverableCompletesTaskAndCounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, model.Task{Title: "write report", AssignedToID: "u1", AssignedByID: "u2"})
	require.NoError(t, err)

	task, err = svc.SubmitDeliverable(ctx, task.ID, model.TaskDeliverable{Notes: "done"})
	require.NoError(t, err)
	require.Equal(t, model.TaskCompleted, task.Status)
	require.NotNil(t, task.Deliverable)
	require.False(t, task.Deliverable.SubmittedAt.IsZero())
}

func TestNetworkingNinjaAtThreeMeetings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.ScheduleMeeting(ctx, model.Meeting{Title: "check-in", OrganizerID: "u2", Date: "2025-03-11", Attendees: []string{"u1"}})
		require.NoError(t, err)
	}
	require.Zero(t, badgeCount(t, svc, "u1", badge.NetworkingNinjaID))

	_, err := svc.ScheduleMeeting(ctx, model.Meeting{Title: "check-in", OrganizerID: "u2", Date: "2025-03-12", Attendees: []string{"u1"}})
	require.NoError(t, err)
	require.Equal(t, 1, badgeCount(t, svc, "u1", badge.NetworkingNinjaID))
}

func TestImpactPlayerOnPraiseFeedback(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, model.Task{Title: "demo", AssignedToID: "u1", AssignedByID: "u2"})
	require.NoError(t, err)

	_, err = svc.GiveFeedback(ctx, task.ID, model.TaskFeedback{Type: model.FeedbackGrowth, Comment: "more tests"})
	require.NoError(t, err)
	require.Zero(t, badgeCount(t, svc, "u1", badge.ImpactPlayerID))

	_, err = svc.GiveFeedback(ctx, task.ID, model.TaskFeedback{Type: model.FeedbackPraise, Comment: "great work"})
	require.NoError(t, err)
	require.Equal(t, 1, badgeCount(t, svc, "u1", badge.ImpactPlayerID))
}

func TestCheckInGeofence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	evt, err := svc.CheckIn(ctx, "u1", testOffice.Latitude, testOffice.Longitude)
	require.NoError(t, err)
	require.True(t, evt.InRange)
	require.Zero(t, evt.DistanceKm)

	// ~1.1 km away.
	evt, err = svc.CheckIn(ctx, "u1", testOffice.Latitude+0.01, testOffice.Longitude)
	var oor OutOfRangeError
	require.ErrorAs(t, err, &oor)
	require.Greater(t, oor.DistanceKm, testOffice.RadiusKm)
	require.False(t, evt.InRange)

	// Both attempts are recorded.
	require.Len(t, svc.Store().CheckIns("u1"), 2)
}

func TestReviewLogTerminal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	entry, err := svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "2025-03-03", HoursWorked: 5})
	require.NoError(t, err)

	entry, err = svc.ReviewLog(ctx, entry.ID, true, "nice work")
	require.NoError(t, err)
	require.Equal(t, model.LogApproved, entry.Status)

	_, err = svc.ReviewLog(ctx, entry.ID, false, "changed my mind")
	require.ErrorIs(t, err, store.ErrAlreadyReviewed)
}

func TestLeaveReviewNotifiesStudent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	lr, err := svc.RequestLeave(ctx, model.LeaveRequest{StudentID: "u1", StartDate: "2025-03-20", EndDate: "2025-03-21", Type: model.LeaveSick, Reason: "flu"})
	require.NoError(t, err)
	require.Equal(t, model.LeavePending, lr.Status)

	lr, err = svc.ReviewLeave(ctx, lr.ID, true)
	require.NoError(t, err)
	require.Equal(t, model.LeaveApproved, lr.Status)

	feed := svc.Store().NotificationsFor("u1")
	require.NotEmpty(t, feed)
	require.Contains(t, feed[0].Title, "Leave Request")

	_, err = svc.ReviewLeave(ctx, lr.ID, false)
	require.ErrorIs(t, err, store.ErrAlreadyReviewed)
}

func TestLeaderboardThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, model.Task{Title: "one", AssignedToID: "u1", AssignedByID: "u2"})
	require.NoError(t, err)
	_, err = svc.UpdateTaskStatus(ctx, task.ID, model.TaskCompleted)
	require.NoError(t, err)

	rows := svc.Leaderboard()
	require.Len(t, rows, 1)
	require.Equal(t, "u1", rows[0].UserID)
	require.Equal(t, 10, rows[0].Points)
}

func TestAttendanceMonthUsesInjectedClock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Friday March 7 is in the past relative to the pinned clock
	// (March 10).
	_, err := svc.SubmitLog(ctx, SubmitLogInput{StudentID: "u1", Date: "2025-03-07", HoursWorked: 8})
	require.NoError(t, err)

	overview := svc.AttendanceMonth("u1", 2025, time.March)
	require.Len(t, overview.Days, 31)
	require.Equal(t, "present", string(overview.Days[6].Status))  // Mar 7
	require.Equal(t, "absent", string(overview.Days[5].Status))   // Mar 6, weekday, no log
	require.Equal(t, "future", string(overview.Days[30].Status))  // Mar 31
	require.Equal(t, "weekend", string(overview.Days[7].Status))  // Mar 8, Saturday
	require.Positive(t, overview.Stats.Required)
}
