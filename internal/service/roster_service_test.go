package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/svuportal/portal-backend/internal/model"
	"github.com/svuportal/portal-backend/internal/repository"
	"github.com/svuportal/portal-backend/internal/sorting"
)

func testRosterService() *RosterService {
	return NewRosterService(repository.NewRosterRepository(), zerolog.Nop())
}

func TestFilterRoster(t *testing.T) {
	students := repository.NewRosterRepository().List(context.Background())

	tests := []struct {
		name      string
		filter    RosterFilter
		wantCount int
		wantFirst string
	}{
		{
			name:      "zero filter keeps everyone",
			filter:    RosterFilter{},
			wantCount: 6,
		},
		{
			name:      "department and year match the whole demo roster",
			filter:    RosterFilter{Department: "Computer Science", Year: "3"},
			wantCount: 6,
		},
		{
			name:      "query matches name case-insensitively",
			filter:    RosterFilter{Query: "emma"},
			wantCount: 1,
			wantFirst: "Emma Wilson",
		},
		{
			name:      "query matches student ID",
			filter:    RosterFilter{Query: "SVU2023003"},
			wantCount: 1,
			wantFirst: "Robert Chen",
		},
		{
			name:      "query matches email substring",
			filter:    RosterFilter{Query: "sophia.patel@"},
			wantCount: 1,
			wantFirst: "Sophia Patel",
		},
		{
			name:      "department mismatch excludes everyone",
			filter:    RosterFilter{Department: "Mathematics"},
			wantCount: 0,
		},
		{
			name:      "year mismatch excludes everyone",
			filter:    RosterFilter{Year: "1"},
			wantCount: 0,
		},
		{
			name:      "constraints compose with AND",
			filter:    RosterFilter{Query: "john", Department: "Computer Science", Year: "3"},
			wantCount: 2, // John Student and Alice Johnson
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRoster(students, tt.filter)
			if len(got) != tt.wantCount {
				t.Fatalf("FilterRoster() kept %d students, want %d: %+v", len(got), tt.wantCount, got)
			}
			if tt.wantFirst != "" && got[0].Name != tt.wantFirst {
				t.Errorf("FilterRoster() first = %q, want %q", got[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestSortRoster(t *testing.T) {
	students := repository.NewRosterRepository().List(context.Background())

	byScore, err := SortRoster(students, sorting.State{Field: "average_score", Direction: sorting.Descending})
	if err != nil {
		t.Fatalf("SortRoster(average_score desc) error = %v", err)
	}
	if byScore[0].Name != "Robert Chen" {
		t.Errorf("top scorer = %q, want Robert Chen", byScore[0].Name)
	}
	if byScore[len(byScore)-1].Name != "Emma Wilson" {
		t.Errorf("lowest scorer = %q, want Emma Wilson", byScore[len(byScore)-1].Name)
	}

	// Missing performance figures sort as zero instead of panicking.
	withNil := append(students, model.StudentRecord{ID: "7", Name: "Zed Noscore"})
	byScoreAsc, err := SortRoster(withNil, sorting.State{Field: "average_score", Direction: sorting.Ascending})
	if err != nil {
		t.Fatalf("SortRoster() with nil performance error = %v", err)
	}
	if byScoreAsc[0].Name != "Zed Noscore" {
		t.Errorf("nil performance should sort first ascending, got %q", byScoreAsc[0].Name)
	}

	if _, err := SortRoster(students, sorting.NewState("favorite_color")); !errors.Is(err, ErrUnknownSortField) {
		t.Errorf("SortRoster(unknown field) error = %v, want ErrUnknownSortField", err)
	}
}

func TestRosterServiceListFiltersBeforeSorting(t *testing.T) {
	svc := testRosterService()
	ctx := context.Background()

	got, err := svc.List(ctx, RosterFilter{Query: "o"}, sorting.State{Field: "name", Direction: sorting.Descending})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// "o" matches John Student, Alice Johnson, Robert Chen, Emma Wilson
	// and Sophia Patel but not Michael Smith.
	if len(got) != 5 {
		t.Fatalf("List() kept %d students: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Name < got[i].Name {
			t.Fatalf("List() not sorted descending by name: %q before %q", got[i-1].Name, got[i].Name)
		}
	}
}

func TestRosterServiceCourseStats(t *testing.T) {
	svc := testRosterService()

	courses := svc.CourseStats(context.Background())
	if len(courses) != 3 {
		t.Fatalf("CourseStats() returned %d courses, want 3", len(courses))
	}
	if courses[0].Name != "Data Structures" || courses[0].Students != 45 {
		t.Errorf("CourseStats()[0] = %+v", courses[0])
	}
}
