package leda

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// mlyPerMegaparsec is the distance in Mly at distance modulus 25 (1 Mpc)
const mlyPerMegaparsec = 3.26163344

// DistanceMly converts a distance modulus to megalight-years
func DistanceMly(modulus float64) float64 {
	return mlyPerMegaparsec * math.Pow(10, (modulus-25)/5)
}

// Field identifies which modulus column an estimate was derived from
type Field string

const (
	FieldNone    Field = ""
	FieldModBest Field = "modbest"
	FieldMod0    Field = "mod0"
	FieldModZ    Field = "modz"
)

// Row is one data row of a meandata response: objname, modz, mod0, modbest
type Row struct {
	Object  string
	ModZ    string
	Mod0    string
	ModBest string
}

// Estimate is the distance derived for one object
type Estimate struct {
	Object      string
	Field       Field
	Modulus     float64
	DistanceMly float64
	// Rows is the number of data rows returned by the catalog
	Rows int
}

// Found reports whether any modulus field was usable
func (e Estimate) Found() bool {
	return e.Field != FieldNone
}

// Modulus returns the preferred modulus of the row: modbest, then mod0, then modz.
// ok is false when all three are empty.
func (r Row) Modulus() (value string, field Field, ok bool) {
	switch {
	case r.ModBest != "":
		return r.ModBest, FieldModBest, true
	case r.Mod0 != "":
		return r.Mod0, FieldMod0, true
	case r.ModZ != "":
		return r.ModZ, FieldModZ, true
	default:
		return "", FieldNone, false
	}
}

// Estimate computes the distance for a single row. A row without any modulus
// yields a zero estimate.
func (r Row) Estimate() (Estimate, error) {
	est := Estimate{Object: r.Object}

	raw, field, ok := r.Modulus()
	if !ok {
		return est, nil
	}

	modulus, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return est, fmt.Errorf("invalid %s value %q for %s: %w", field, raw, r.Object, err)
	}
	if math.IsNaN(modulus) {
		return est, fmt.Errorf("invalid %s value %q for %s: not a number", field, raw, r.Object)
	}

	est.Field = field
	est.Modulus = modulus
	est.DistanceMly = DistanceMly(modulus)
	return est, nil
}

func newRow(fields []string) Row {
	at := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	return Row{
		Object:  at(0),
		ModZ:    at(1),
		Mod0:    at(2),
		ModBest: at(3),
	}
}
