package leda

import (
	"math"
	"strings"
	"testing"
)

func TestDistanceMly(t *testing.T) {
	tests := []struct {
		name    string
		modulus float64
		want    float64
	}{
		{name: "modulus 25 is 1 Mpc", modulus: 25, want: 3.26163344},
		{name: "modulus 30 is 10 Mpc", modulus: 30, want: 32.6163344},
		{name: "modulus 35 is 100 Mpc", modulus: 35, want: 326.163344},
		{name: "modulus 20 is 100 kpc", modulus: 20, want: 0.326163344},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMly(tt.modulus)
			if math.Abs(got-tt.want) > 1e-9*tt.want {
				t.Errorf("DistanceMly(%v) = %v, want %v", tt.modulus, got, tt.want)
			}
		})
	}
}

func TestDistanceMly_Monotonic(t *testing.T) {
	prev := DistanceMly(-10)
	for m := -9.75; m <= 50; m += 0.25 {
		got := DistanceMly(m)
		if got <= prev {
			t.Fatalf("DistanceMly(%v) = %v, not greater than previous %v", m, got, prev)
		}
		if got < 0 {
			t.Fatalf("DistanceMly(%v) = %v, want non-negative", m, got)
		}
		prev = got
	}
}

func TestRow_Estimate(t *testing.T) {
	tests := []struct {
		name      string
		row       Row
		wantField Field
		wantMly   float64
		wantErr   bool
	}{
		{
			name:      "all populated uses modbest",
			row:       Row{Object: "NGC4889", ModZ: "35", Mod0: "30", ModBest: "25"},
			wantField: FieldModBest,
			wantMly:   3.26163344,
		},
		{
			name:      "modz and mod0 populated uses mod0",
			row:       Row{Object: "NGC4889", ModZ: "35", Mod0: "30"},
			wantField: FieldMod0,
			wantMly:   32.6163344,
		},
		{
			name:      "only modz populated uses modz",
			row:       Row{Object: "NGC4889", ModZ: "35"},
			wantField: FieldModZ,
			wantMly:   326.163344,
		},
		{
			name:      "none populated is zero",
			row:       Row{Object: "NGC4889"},
			wantField: FieldNone,
			wantMly:   0,
		},
		{
			name:    "malformed modulus",
			row:     Row{Object: "NGC4889", ModBest: "n/a"},
			wantErr: true,
		},
		{
			name:    "nan modulus",
			row:     Row{Object: "NGC4889", ModBest: "nan"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.row.Estimate()
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "invalid modbest") {
					t.Fatalf("Estimate() error = %v, want invalid modbest error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Estimate() error = %v", err)
			}
			if got.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", got.Field, tt.wantField)
			}
			if got.Found() != (tt.wantField != FieldNone) {
				t.Errorf("Found() = %v, want %v", got.Found(), tt.wantField != FieldNone)
			}
			if math.Abs(got.DistanceMly-tt.wantMly) > 1e-9 {
				t.Errorf("DistanceMly = %v, want %v", got.DistanceMly, tt.wantMly)
			}
		})
	}
}
