package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/iudanet/qaforum/internal/models"
)

func renderVotable(w io.Writer, v models.Votable) {
	fmt.Fprintf(w, "%s %s", v.Kind, v.ID)
	if v.Title != "" {
		fmt.Fprintf(w, ": %s", v.Title)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  score: %s", humanize.Comma(int64(v.VoteCount)))
	switch v.UserVote {
	case models.VoteUp:
		fmt.Fprint(w, " (you upvoted)")
	case models.VoteDown:
		fmt.Fprint(w, " (you downvoted)")
	}
	fmt.Fprintln(w)
}

func renderAggregate(w io.Writer, agg models.NotificationAggregate) {
	fmt.Fprintf(w, "Unread: %d  Total: %d  Archived: %d\n", agg.Unread, agg.Total, agg.Archived)

	// От высшего приоритета к низшему
	parts := make([]string, 0, len(models.Priorities))
	for i := len(models.Priorities) - 1; i >= 0; i-- {
		p := models.Priorities[i]
		parts = append(parts, fmt.Sprintf("%s %d", p, agg.ByPriority[p]))
	}
	fmt.Fprintf(w, "Unread by priority: %s\n", strings.Join(parts, ", "))
}

func renderNotifications(w io.Writer, items []models.Notification, agg models.NotificationAggregate, now time.Time) {
	renderAggregate(w, agg)
	fmt.Fprintln(w)

	if len(items) == 0 {
		fmt.Fprintln(w, "No notifications")
		return
	}

	for _, n := range items {
		marker := " "
		if n.CountsAsUnread() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-9s %-12s %s (%s)\n",
			marker,
			"["+string(n.Priority)+"]",
			n.ID,
			n.Title,
			humanize.RelTime(n.CreatedAt, now, "ago", "from now"))
		if n.Message != "" {
			fmt.Fprintf(w, "  %s\n", n.Message)
		}
	}
}
