package dates

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pypin/pkg/errors"
)

func TestParse_AllFormatsAgree(t *testing.T) {
	want := New(2021, time.March, 14)

	inputs := []string{
		"14-03-2021",
		"14-3-2021",
		"2021-03-14",
		"2021-3-14",
		"03/14/2021",
		"14/03/2021",
		"2021/03/14",
		"Mar 14 2021",
		"March 14 2021",
		"14 Mar 2021",
		"14 March 2021",
		"  2021-03-14\n",
		"MARCH 14 2021",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", in, err)
			}
			if !got.Equal(want) {
				t.Errorf("Parse(%q) = %s, want %s", in, got, want)
			}
		})
	}
}

func TestParse_OrderResolvesAmbiguity(t *testing.T) {
	tests := []struct {
		input string
		want  Date
	}{
		{"01-02-2020", New(2020, time.February, 1)},  // day-first with dashes
		{"01/02/2020", New(2020, time.January, 2)},   // month-first with slashes
		{"13/02/2020", New(2020, time.February, 13)}, // falls through to DD/MM/YYYY
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"yesterday",
		"2021.03.14",
		"14-03-21",
		"2021-03-14T00:00:00Z",
		"31-02-2020",
		"2021-13-01",
		"Mar 14, 2021 extra",
		"Foo 14 2021",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", in)
			}
			if !errors.Is(err, errors.ErrCodeInvalidDateFormat) {
				t.Errorf("Parse(%q) error code = %v, want %v", in, errors.GetCode(err), errors.ErrCodeInvalidDateFormat)
			}
		})
	}
}

func TestParse_ErrorListsFormats(t *testing.T) {
	_, err := Parse("nope")
	msg := errors.UserMessage(err)
	for _, f := range Formats() {
		if !strings.Contains(msg, f) {
			t.Errorf("error message %q does not mention format %q", msg, f)
		}
	}
}

func TestFormats(t *testing.T) {
	if got := len(Formats()); got != 9 {
		t.Errorf("len(Formats()) = %d, want 9", got)
	}
	if Formats()[0] != "DD-MM-YYYY" {
		t.Errorf("first format = %q, want DD-MM-YYYY", Formats()[0])
	}
}

func TestDate_Time(t *testing.T) {
	d := New(2020, time.January, 5)
	want := time.Date(2020, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !d.Time().Equal(want) {
		t.Errorf("Time() = %v, want %v", d.Time(), want)
	}
}

func TestDate_Of(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2020-01-05 03:00 at UTC+10 is still 2020-01-04 in UTC.
	tm := time.Date(2020, time.January, 5, 3, 0, 0, 0, loc)
	if got := Of(tm); got != New(2020, time.January, 4) {
		t.Errorf("Of() = %s, want 2020-01-04", got)
	}
}

func TestDate_Compare(t *testing.T) {
	a := New(2020, time.January, 5)
	b := New(2020, time.February, 1)
	if !a.Before(b) {
		t.Error("a.Before(b) = false, want true")
	}
	if b.Before(a) {
		t.Error("b.Before(a) = true, want false")
	}
	if !a.Equal(New(2020, 1, 5)) {
		t.Error("Equal() = false for same day")
	}
	if !(Date{}).IsZero() || a.IsZero() {
		t.Error("IsZero() mismatch")
	}
}

func TestDate_TextRoundTrip(t *testing.T) {
	var d Date
	if err := d.UnmarshalText([]byte("5 January 2020")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	b, _ := d.MarshalText()
	if string(b) != "2020-01-05" {
		t.Errorf("MarshalText() = %q, want %q", b, "2020-01-05")
	}
	if err := d.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) succeeded, want error")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid input")
		}
	}()
	MustParse("invalid")
}
