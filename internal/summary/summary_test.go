package summary

import (
	"strings"
	"testing"
	"time"

	"unwrapped_go/models"
)

func TestValidateYear(t *testing.T) {
	current := time.Now().Year()

	if err := ValidateYear(current); err != nil {
		t.Errorf("текущий год должен приниматься: %v", err)
	}
	if err := ValidateYear(MinYear); err != nil {
		t.Errorf("год %d должен приниматься: %v", MinYear, err)
	}
	if err := ValidateYear(current + 1); err == nil {
		t.Error("будущий год должен отклоняться")
	}
	if err := ValidateYear(MinYear - 1); err == nil {
		t.Error("год раньше появления Telegram должен отклоняться")
	}
}

func TestWithCommas(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
	}
	for n, want := range cases {
		if got := withCommas(n); got != want {
			t.Errorf("withCommas(%d) = %q, ожидалось %q", n, got, want)
		}
	}
}

func TestBuildCaption(t *testing.T) {
	result := &Result{
		Username: "durov",
		Snapshot: &models.ChannelSnapshot{
			Channel:     "durov",
			Subscribers: 1500000,
			Year:        2024,
		},
		Summary: models.StatsSummary{
			TotalPosts:     120,
			TotalViews:     3400000,
			TotalReactions: 85000,
			EngagementRate: 2.5,
			TopPosts: []models.ChannelPost{
				{ID: 42, Views: 900000},
			},
			MediaCounts: map[string]int{
				models.MediaPhoto: 40,
				models.MediaVideo: 10,
				models.MediaPoll:  2,
				models.MediaText:  68,
			},
			MostActiveHour:    14,
			MostActiveWeekday: 0,
			MostActiveMonth:   1,
		},
	}

	caption := BuildCaption(result)

	for _, want := range []string{
		"Channel Summary for 2024",
		"Growth &amp; Engagement",
		"1,500,000",
		"https://t.me/durov/42",
		"2 PM",
		"Monday",
		"January",
		"#TelegramUnwrapped",
	} {
		if !strings.Contains(caption, want) {
			t.Errorf("в подписи не хватает %q:\n%s", want, caption)
		}
	}
}
