package errors

import (
	"testing"
)

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{" 3 ", 3, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"ten", 0, true},
		{"", 0, true},
		{"99999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMaxResults(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMaxResults(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ParseMaxResults(%q) returned wrong error code: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMaxResults(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOnlyMinimal(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"0", false, false},
		{"yes", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOnlyMinimal(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOnlyMinimal(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOnlyMinimal(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	if err := ValidateInterval(0); err != nil {
		t.Errorf("ValidateInterval(0) = %v, want nil", err)
	}
	if err := ValidateInterval(500); err != nil {
		t.Errorf("ValidateInterval(500) = %v, want nil", err)
	}
	if err := ValidateInterval(-1); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateInterval(-1) = %v, want INVALID_INPUT", err)
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "results", false},
		{"with dir", "out/results", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control char", "res\x00ults", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidInstance,
		ErrCodeInvalidFormat,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInfeasible,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
