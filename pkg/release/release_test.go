package release

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func history() Set {
	s := Set{}
	s.Add("1.0", day(2020, time.January, 1))
	s.Add("1.0", day(2020, time.January, 3)) // late wheel for 1.0
	s.Add("1.1", day(2020, time.February, 1))
	s.Add("2.0", day(2020, time.March, 1))
	return s
}

func TestLatestAsOf(t *testing.T) {
	s := history()

	tests := []struct {
		name   string
		cutoff time.Time
		want   string
		wantOK bool
		wantAt time.Time
	}{
		{"before first release", day(2019, time.December, 31), "", false, time.Time{}},
		{"exactly first upload", day(2020, time.January, 1), "1.0", true, day(2020, time.January, 1)},
		{"late file of same version", day(2020, time.January, 10), "1.0", true, day(2020, time.January, 3)},
		{"exactly T2 is inclusive", day(2020, time.February, 1), "1.1", true, day(2020, time.February, 1)},
		{"between T2 and T3", day(2020, time.February, 20), "1.1", true, day(2020, time.February, 1)},
		{"one nanosecond before T3", day(2020, time.March, 1).Add(-time.Nanosecond), "1.1", true, day(2020, time.February, 1)},
		{"after last", day(2024, time.January, 1), "2.0", true, day(2020, time.March, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.LatestAsOf(tt.cutoff)
			if ok != tt.wantOK {
				t.Fatalf("LatestAsOf() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Version != tt.want {
				t.Errorf("LatestAsOf() version = %q, want %q", got.Version, tt.want)
			}
			if !got.UploadedAt.Equal(tt.wantAt) {
				t.Errorf("LatestAsOf() at = %v, want %v", got.UploadedAt, tt.wantAt)
			}
		})
	}
}

func TestLatestAsOf_NotSemverOrder(t *testing.T) {
	// A backport published after a newer major still wins by time.
	s := Set{}
	s.Add("3.0.0", day(2021, time.January, 1))
	s.Add("2.9.9", day(2021, time.June, 1))

	got, ok := s.LatestAsOf(day(2021, time.July, 1))
	if !ok || got.Version != "2.9.9" {
		t.Errorf("LatestAsOf() = %q, %v; want 2.9.9, true", got.Version, ok)
	}
}

func TestLatestAsOf_TieBreak(t *testing.T) {
	at := day(2022, time.May, 5)
	s := Set{}
	s.Add("1.10", at)
	s.Add("1.9", at)
	s.Add("1.2", at)

	for i := 0; i < 20; i++ {
		got, ok := s.LatestAsOf(at)
		if !ok || got.Version != "1.10" {
			t.Fatalf("LatestAsOf() = %q, %v; want 1.10, true", got.Version, ok)
		}
	}
}

func TestLatestAsOf_Empty(t *testing.T) {
	if _, ok := (Set{}).LatestAsOf(day(2030, time.January, 1)); ok {
		t.Error("LatestAsOf() on empty set returned ok")
	}
	s := Set{"0.1": nil}
	if _, ok := s.LatestAsOf(day(2030, time.January, 1)); ok {
		t.Error("LatestAsOf() with no files returned ok")
	}
}

func TestAdd_StoresUTC(t *testing.T) {
	s := Set{}
	loc := time.FixedZone("CET", 3600)
	s.Add("1.0", time.Date(2020, time.January, 1, 1, 0, 0, 0, loc))
	if got := s["1.0"][0].Location(); got != time.UTC {
		t.Errorf("stored location = %v, want UTC", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
