package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-09-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsDateWithin(t *testing.T) {
	min := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		in   time.Time
		want bool
	}{
		{min, true},
		{max, true},
		{time.Date(2024, 9, 30, 23, 59, 0, 0, time.UTC), true},
		{time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := IsDateWithin(c.in, min, max); got != c.want {
			t.Errorf("IsDateWithin(%s) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsMultipleOf(t *testing.T) {
	valid := []float64{0, 0.25, 6.5, 7.75, -1.25, 12}
	invalid := []float64{0.1, 6.3, 7.8}
	for _, f := range valid {
		if !IsMultipleOf(f, 0.25) {
			t.Errorf("IsMultipleOf(%v, 0.25) = false, want true", f)
		}
	}
	for _, f := range invalid {
		if IsMultipleOf(f, 0.25) {
			t.Errorf("IsMultipleOf(%v, 0.25) = true, want false", f)
		}
	}
	if IsMultipleOf(1, 0) {
		t.Errorf("IsMultipleOf with zero step should be false")
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b") {
		t.Errorf("expected valid uuid")
	}
	if IsValidUUID("not-a-uuid") {
		t.Errorf("expected invalid uuid")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "invalid"},
		{Field: "manager", Message: "required"},
	}
	got := errs.Error()
	want := "start_date: invalid; manager: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "invalid"},
		{Field: "manager", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"start_date": "invalid", "manager": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
