package errors

import "testing"

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"digit", "7", false},
		{"letter", "x", false},
		{"operator", "+", false},
		{"command", `\frac`, false},
		{"long command", `\sum`, false},

		{"empty", "", true},
		{"space", "a b", true},
		{"newline", "a\n", true},
		{"bare backslash", `\`, true},
		{"backslash digit", `\1`, true},
		{"too long", `\` + string(make([]rune, 40)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateBox(t *testing.T) {
	tests := []struct {
		name       string
		l, t, r, b int
		wantErr    bool
	}{
		{"valid", 0, 0, 10, 10, false},
		{"single pixel", 3, 4, 4, 5, false},
		{"negative origin", -1, 0, 10, 10, true},
		{"zero width", 5, 0, 5, 10, true},
		{"inverted height", 0, 10, 5, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBox(tt.l, tt.t, tt.r, tt.b)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBox() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidBox) {
				t.Errorf("ValidateBox() returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "images/eq1.png", false},
		{"valid absolute", "/tmp/eq1.png", false},
		{"valid filename only", "eq.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid nested", "images/set1/eq.png", false},
		{"valid with dots", "v1.2/eq.png", false},

		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"backslash", "foo\\bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRelativePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelativePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidLabel,
		ErrCodeInvalidBox,
		ErrCodeInvalidPath,
		ErrCodeInvalidConnection,
		ErrCodeUnknownLabel,
		ErrCodeArity,
		ErrCodeNoRelation,
		ErrCodeNoRoot,
		ErrCodeDisconnected,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeUnavailable,
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
