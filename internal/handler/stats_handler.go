package handler

import (
	"net/http"

	"relaychat/internal/pkg/resp"
)

// MemberView is the public view of one pool member.
type MemberView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
	State    string `json:"state"`
}

// StatsView summarizes the pool.
type StatsView struct {
	Members int          `json:"members"`
	Active  int          `json:"active"`
	Users   []MemberView `json:"users"`
}

// HandleStats reports the current pool membership.
func HandleStats(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := deps.Pool.GetAllConnections()

		views := make([]MemberView, 0, len(users))
		for _, u := range users {
			views = append(views, MemberView{
				ID:       u.ID,
				Username: u.Username,
				Color:    u.Color,
				State:    u.State().String(),
			})
		}

		resp.RespondSuccess(w, r, StatsView{
			Members: len(views),
			Active:  deps.Pool.GetActiveCount(),
			Users:   views,
		})
	}
}
