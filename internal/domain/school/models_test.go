package school

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"07:00", 420, false},
		{"7:5", 425, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tt.value, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestFormatClockZeroPads(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{425, "07:05"},
		{540, "09:00"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.minutes); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestScheduleWindow(t *testing.T) {
	s := Schedule{StartTime: "07:00", EndTime: "09:30"}

	start, end, err := s.Window()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 420 || end != 570 {
		t.Errorf("Window() = (%d, %d), want (420, 570)", start, end)
	}

	bad := Schedule{StartTime: "oops", EndTime: "09:30"}
	if _, _, err := bad.Window(); err == nil {
		t.Error("expected error for malformed start time")
	}
}

func TestTeacherHasSpeciality(t *testing.T) {
	maths := Speciality{SpecialityID: uuid.New(), Name: "Mathematics"}

	teacher := Teacher{Specialities: []Speciality{maths}}
	if !teacher.HasSpeciality(maths.SpecialityID) {
		t.Error("expected teacher to have its own speciality")
	}
	if teacher.HasSpeciality(uuid.New()) {
		t.Error("expected unknown speciality to be absent")
	}

	var empty Teacher
	if empty.HasSpeciality(maths.SpecialityID) {
		t.Error("teacher with no specialities should match nothing")
	}
}
