package validation

import (
	"testing"
)

func TestRequired(t *testing.T) {
	v := make(Violations)
	Required("name", "Acme", v)
	Required("email", "   ", v)

	if v.Empty() {
		t.Fatal("expected violations")
	}
	if _, ok := v["name"]; ok {
		t.Error("name flagged despite being set")
	}
	if v["email"] != "required" {
		t.Errorf("email violation = %q, want required", v["email"])
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		required  bool
		wantOK    bool
		violation string
	}{
		{"valid", "2025-03-10", true, true, ""},
		{"empty required", "", true, false, "required"},
		{"empty optional", "", false, false, ""},
		{"malformed", "10/03/2025", true, false, "invalid_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Violations)
			got, ok := Date("d", tt.value, tt.required, v)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.violation == "" && !v.Empty() {
				t.Errorf("unexpected violations: %v", v)
			}
			if tt.violation != "" && v["d"] != tt.violation {
				t.Errorf("violation = %q, want %q", v["d"], tt.violation)
			}
			if tt.wantOK && got.Format("2006-01-02") != tt.value {
				t.Errorf("parsed = %s, want %s", got, tt.value)
			}
		})
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		def       string
		want      string
		violation string
	}{
		{"valid", "19.99", "0", "19.99", ""},
		{"empty uses default", "", "1", "1", ""},
		{"whitespace uses default", "  ", "0", "0", ""},
		{"malformed", "abc", "0", "0", "invalid_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := make(Violations)
			got := Decimal("amount", tt.value, tt.def, v)
			if got.String() != tt.want {
				t.Errorf("Decimal() = %s, want %s", got, tt.want)
			}
			if tt.violation == "" && !v.Empty() {
				t.Errorf("unexpected violations: %v", v)
			}
			if tt.violation != "" && v["amount"] != tt.violation {
				t.Errorf("violation = %q, want %q", v["amount"], tt.violation)
			}
		})
	}
}
