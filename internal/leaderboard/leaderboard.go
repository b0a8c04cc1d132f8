package leaderboard

import (
	"sort"

	"interntrack/internal/model"
)

// TaskPoints is the per-completed-task bonus added to badge points.
const TaskPoints = 10

// Row is one ranked leaderboard entry.
type Row struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Points     int    `json:"points"`
	BadgeCount int    `json:"badge_count"`
	TaskCount  int    `json:"task_count"`
}

// Standings ranks all STUDENT users by points, descending. Points are
// the sum of held badge point values plus TaskPoints per completed
// task. Unknown badge ids contribute zero. Ties keep input order.
func Standings(users []model.User, userBadges []model.UserBadge, badges []model.Badge, tasks []model.Task) []Row {
	pointsByBadge := make(map[string]int, len(badges))
	for _, b := range badges {
		pointsByBadge[b.ID] = b.Points
	}

	rows := make([]Row, 0)
	for _, u := range users {
		if u.Role != model.RoleStudent {
			continue
		}
		row := Row{UserID: u.ID, Name: u.Name, Avatar: u.Avatar}
		for _, ub := range userBadges {
			if ub.UserID == u.ID {
				row.BadgeCount++
				row.Points += pointsByBadge[ub.BadgeID]
			}
		}
		for _, t := range tasks {
			if t.AssignedToID == u.ID && t.Status == model.TaskCompleted {
				row.TaskCount++
			}
		}
		row.Points += row.TaskCount * TaskPoints
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows
}
