package validator

import (
	"testing"

	"fupa/constants"
	"fupa/errors"
	"fupa/models"
)

func TestValidateOverride(t *testing.T) {
	tests := []struct {
		name string
		rule models.OverrideRule
		code errors.ErrorCode
	}{
		{"ok", models.OverrideRule{Mode: constants.OverrideNoAttendance, Start: "2025-06-01", End: "2025-06-03"}, ""},
		{"single day", models.OverrideRule{Mode: constants.OverrideMandatory, Start: "2025-06-01", End: "2025-06-01"}, ""},
		{"bad mode", models.OverrideRule{Mode: "holiday", Start: "2025-06-01", End: "2025-06-03"}, errors.ErrCodeValidation},
		{"bad date", models.OverrideRule{Mode: constants.OverrideMandatory, Start: "01/06/2025", End: "2025-06-03"}, errors.ErrCodeValidation},
		{"reversed", models.OverrideRule{Mode: constants.OverrideMandatory, Start: "2025-06-04", End: "2025-06-03"}, errors.ErrCodeInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverride(&tt.rule)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateAnnouncement(t *testing.T) {
	ok := models.Announcement{Date: "2025-06-02", Time: "07:30", Description: "Stock opname"}
	if err := ValidateAnnouncement(&ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range []models.Announcement{
		{Date: "2025-06-02", Time: "7.30", Description: "x"},
		{Date: "2025-13-02", Time: "07:30", Description: "x"},
		{Date: "2025-06-02", Time: "07:30", Description: "   "},
	} {
		if err := ValidateAnnouncement(&a); err == nil {
			t.Fatalf("expected error for %+v", a)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateEmail("kasir@fupa.id"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := ValidateEmail("kasir@"); !errors.HasCode(err, errors.ErrCodeInvalidEmail) {
		t.Fatalf("err = %v", err)
	}
	if err := ValidatePassword("12345"); !errors.HasCode(err, errors.ErrCodeInvalidPassword) {
		t.Fatalf("short password accepted")
	}
	if err := ValidateRole("owner"); !errors.HasCode(err, errors.ErrCodeInvalidRole) {
		t.Fatalf("unknown role accepted")
	}
	if err := ValidateDate("date", "2025-02-30"); !errors.HasCode(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("impossible date accepted")
	}
}
