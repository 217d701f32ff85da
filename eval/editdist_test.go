package eval

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "清华大学", "清华大学", 0},
		{"empty_both", "", "", 0},
		{"empty_a", "", "你好", 2},
		{"empty_b", "你", "", 1},
		{"substitution", "青华大学", "清华大学", 1},
		{"insertion", "你好", "你好吗", 1},
		{"deletion", "你好吗", "你好", 1},
		{"homophones", "期中考试", "其中考试", 1},
		{"all_different", "天气", "地球", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EditDistance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
