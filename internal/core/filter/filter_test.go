package filter

import (
	"testing"

	"github.com/example/tickdup/internal/models"
)

func TestCriteriaMatches(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		task     models.Task
		want     bool
	}{
		{
			name:     "no filters match everything",
			criteria: Criteria{},
			task:     models.Task{Title: "anything at all"},
			want:     true,
		},
		{
			name:     "name filter matches substring",
			criteria: Criteria{Name: "Zap:"},
			task:     models.Task{Title: "Zap: buy milk"},
			want:     true,
		},
		{
			name:     "name filter is case-insensitive",
			criteria: Criteria{Name: "ZAP:"},
			task:     models.Task{Title: "zap: buy milk"},
			want:     true,
		},
		{
			name:     "name filter matches mid-title",
			criteria: Criteria{Name: "milk"},
			task:     models.Task{Title: "Zap: buy milk today"},
			want:     true,
		},
		{
			name:     "name filter rejects non-matching title",
			criteria: Criteria{Name: "Foo"},
			task:     models.Task{Title: "Zap: buy milk"},
			want:     false,
		},
		{
			name:     "tag filter matches on intersection",
			criteria: Criteria{Tags: []string{"errand", "home"}},
			task:     models.Task{Title: "buy milk", Tags: []string{"errand"}},
			want:     true,
		},
		{
			name:     "tag filter rejects disjoint tags",
			criteria: Criteria{Tags: []string{"work"}},
			task:     models.Task{Title: "buy milk", Tags: []string{"errand"}},
			want:     false,
		},
		{
			name:     "tag filter rejects task without tags",
			criteria: Criteria{Tags: []string{"work"}},
			task:     models.Task{Title: "buy milk"},
			want:     false,
		},
		{
			name:     "both filters must match",
			criteria: Criteria{Name: "Zap:", Tags: []string{"errand"}},
			task:     models.Task{Title: "Zap: buy milk", Tags: []string{"errand"}},
			want:     true,
		},
		{
			name:     "name matches but tags do not",
			criteria: Criteria{Name: "Zap:", Tags: []string{"work"}},
			task:     models.Task{Title: "Zap: buy milk", Tags: []string{"errand"}},
			want:     false,
		},
		{
			name:     "tags match but name does not",
			criteria: Criteria{Name: "Foo", Tags: []string{"errand"}},
			task:     models.Task{Title: "Zap: buy milk", Tags: []string{"errand"}},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Matches(&tt.task); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteriaEmpty(t *testing.T) {
	if !(Criteria{}).Empty() {
		t.Error("zero-value criteria should be empty")
	}
	if (Criteria{Name: "x"}).Empty() {
		t.Error("criteria with name filter should not be empty")
	}
	if (Criteria{Tags: []string{"a"}}).Empty() {
		t.Error("criteria with tag filter should not be empty")
	}
}
