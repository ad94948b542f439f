package service

import "testing"

func TestAchievementCount(t *testing.T) {
	tests := []struct {
		name          string
		conversations int64
		messages      int64
		logins        int
		want          int
	}{
		{
			name: "brand new account",
			want: 0,
		},
		{
			name:          "first activity unlocks one badge per track",
			conversations: 1,
			messages:      1,
			logins:        1,
			want:          3,
		},
		{
			name:          "mid milestones",
			conversations: 7,
			messages:      60,
			logins:        12,
			want:          2 + 3 + 3,
		},
		{
			name:          "everything maxed",
			conversations: 100,
			messages:      5000,
			logins:        1000,
			want:          20,
		},
		{
			name:     "messages only",
			messages: 250,
			want:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := achievementCount(tt.conversations, tt.messages, tt.logins); got != tt.want {
				t.Errorf("achievementCount(%d, %d, %d) = %d, want %d",
					tt.conversations, tt.messages, tt.logins, got, tt.want)
			}
		})
	}
}
