package summary

import (
	"fmt"
	"strings"

	"unwrapped_go/internal/stats"
	"unwrapped_go/models"
)

// BuildCaption собирает HTML-подпись к карточке для отправки в чат.
func BuildCaption(result *Result) string {
	s := result.Summary
	snapshot := result.Snapshot

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Channel Summary for %d</b> 🎉\n\n", snapshot.Year)

	fmt.Fprintf(&b, "<b>📊 Growth &amp; Engagement</b>\n")
	fmt.Fprintf(&b, "• Subscribers: %s\n", withCommas(snapshot.Subscribers))
	fmt.Fprintf(&b, "• Total Posts: %s\n", withCommas(s.TotalPosts))
	fmt.Fprintf(&b, "• Total Views: %s\n", withCommas(s.TotalViews))
	fmt.Fprintf(&b, "• Total Reactions: %s\n", withCommas(s.TotalReactions))
	fmt.Fprintf(&b, "• Engagement Rate: %.2f%%\n\n", s.EngagementRate)

	fmt.Fprintf(&b, "<b>🏆 Top %d Posts</b>\n", len(s.TopPosts))
	for i, post := range s.TopPosts {
		link := fmt.Sprintf("https://t.me/%s/%d", result.Username, post.ID)
		fmt.Fprintf(&b, "%d. <a href='%s'>Post %d</a> — %s views\n", i+1, link, post.ID, withCommas(post.Views))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "<b>🎨 Content Mix</b>\n📷 %d Photos | 🎥 %d Videos | 📊 %d Polls\n\n",
		s.MediaCounts[models.MediaPhoto], s.MediaCounts[models.MediaVideo], s.MediaCounts[models.MediaPoll])

	fmt.Fprintf(&b, "<b>⏰ Activity</b>\n")
	fmt.Fprintf(&b, "• Best Time: %s\n", stats.FormatHour(s.MostActiveHour))
	fmt.Fprintf(&b, "• Best Day: %s\n", stats.WeekdayName(s.MostActiveWeekday))
	fmt.Fprintf(&b, "• Best Month: %s\n\n", stats.MonthName(s.MostActiveMonth))

	b.WriteString("<i>@channel_unwrapped_bot #TelegramUnwrapped</i>")
	return b.String()
}

// withCommas форматирует число с разделителями тысяч для подписи.
func withCommas(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
