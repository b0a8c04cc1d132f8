package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"interntrack/internal/model"
)

func TestStandingsFormula(t *testing.T) {
	users := []model.User{
		{ID: "u1", Name: "Alex", Role: model.RoleStudent},
		{ID: "u2", Name: "Sarah", Role: model.RoleSupervisor},
	}
	badges := []model.Badge{
		{ID: "b1", Points: 50},
		{ID: "b4", Points: 100},
	}
	userBadges := []model.UserBadge{
		{UserID: "u1", BadgeID: "b1"},
		{UserID: "u1", BadgeID: "b4"},
	}
	tasks := []model.Task{
		{AssignedToID: "u1", Status: model.TaskCompleted},
		{AssignedToID: "u1", Status: model.TaskCompleted},
		{AssignedToID: "u1", Status: model.TaskCompleted},
		{AssignedToID: "u1", Status: model.TaskInProgress},
	}

	rows := Standings(users, userBadges, badges, tasks)
	require.Len(t, rows, 1) // supervisors excluded
	require.Equal(t, "u1", rows[0].UserID)
	require.Equal(t, 180, rows[0].Points) // 150 badge points + 3*10
	require.Equal(t, 2, rows[0].BadgeCount)
	require.Equal(t, 3, rows[0].TaskCount)
}

func TestStandingsDescendingWithStableTies(t *testing.T) {
	users := []model.User{
		{ID: "a", Role: model.RoleStudent},
		{ID: "b", Role: model.RoleStudent},
		{ID: "c", Role: model.RoleStudent},
	}
	badges := []model.Badge{{ID: "b1", Points: 30}}
	userBadges := []model.UserBadge{
		{UserID: "b", BadgeID: "b1"},
	}
	tasks := []model.Task{
		{AssignedToID: "a", Status: model.TaskCompleted},
		{AssignedToID: "c", Status: model.TaskCompleted},
	}

	rows := Standings(users, userBadges, badges, tasks)
	require.Len(t, rows, 3)
	require.Equal(t, "b", rows[0].UserID) // 30 points
	// a and c tie at 10; input order is preserved.
	require.Equal(t, "a", rows[1].UserID)
	require.Equal(t, "c", rows[2].UserID)
}

func TestStandingsUnknownBadgeContributesZero(t *testing.T) {
	users := []model.User{{ID: "u1", Role: model.RoleStudent}}
	userBadges := []model.UserBadge{{UserID: "u1", BadgeID: "missing"}}

	rows := Standings(users, userBadges, nil, nil)
	require.Len(t, rows, 1)
	require.Zero(t, rows[0].Points)
	require.Equal(t, 1, rows[0].BadgeCount)
}

func TestStandingsEmpty(t *testing.T) {
	require.Empty(t, Standings(nil, nil, nil, nil))
}
