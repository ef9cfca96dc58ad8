// Package courier maps free-text courier names to static label profiles.
package courier

import (
	"fmt"
	"strings"

	"amorlias/internal/domain"
)

// ErrUnknownCourier is returned by Match for names no rule recognises.
var ErrUnknownCourier = domain.ErrUnknownCourier

// Kind identifies a courier profile.
type Kind string

const (
	KindDelhivery Kind = "delhivery"
	KindShadowfax Kind = "shadowfax"
	KindValmo     Kind = "valmo"
)

// Symbology is the barcode format a courier scans.
type Symbology string

const (
	CODE128 Symbology = "CODE128"
	CODE39  Symbology = "CODE39"
)

const (
	CODInstruction     = "COD: Check the payable amount on the app"
	PrepaidInstruction = "Prepaid: Do not collect cash"
)

// Profile is everything a label needs to know about the courier.
type Profile struct {
	Kind                   Kind      `json:"kind"`
	DisplayLabel           string    `json:"display_label"`
	Symbology              Symbology `json:"symbology"`
	TrackingValue          string    `json:"tracking_value"`
	PaymentInstructionText string    `json:"payment_instruction"`
}

type spec struct {
	label         string
	symbology     Symbology
	upperTracking bool
}

var specs = map[Kind]spec{
	KindShadowfax: {label: "Shadowfax", symbology: CODE128, upperTracking: true},
	KindValmo:     {label: "Valmo", symbology: CODE39},
	KindDelhivery: {label: "Delhivery", symbology: CODE128},
}

// rules are evaluated in order; the first substring hit wins.
var rules = []struct {
	needle string
	kind   Kind
}{
	{"shadowfax", KindShadowfax},
	{"valmo", KindValmo},
}

// Match resolves a courier name to its kind. Unrecognised non-empty names
// return KindDelhivery together with ErrUnknownCourier.
func Match(name string) (Kind, error) {
	lower := strings.ToLower(name)
	for _, r := range rules {
		if strings.Contains(lower, r.needle) {
			return r.kind, nil
		}
	}
	if strings.TrimSpace(name) == "" || strings.Contains(lower, "delhivery") {
		return KindDelhivery, nil
	}
	return KindDelhivery, fmt.Errorf("courier %q: %w", name, ErrUnknownCourier)
}

// Resolve builds the label profile for an order. It never fails; unknown
// couriers get the Delhivery profile.
func Resolve(name string, isCOD bool, tracking string) Profile {
	kind, _ := Match(name)
	return ProfileFor(kind, isCOD, tracking)
}

// ProfileFor builds the profile for an already matched kind.
func ProfileFor(kind Kind, isCOD bool, tracking string) Profile {
	s, ok := specs[kind]
	if !ok {
		kind = KindDelhivery
		s = specs[KindDelhivery]
	}
	if s.upperTracking {
		tracking = strings.ToUpper(tracking)
	}
	return Profile{
		Kind:                   kind,
		DisplayLabel:           s.label,
		Symbology:              s.symbology,
		TrackingValue:          tracking,
		PaymentInstructionText: PaymentInstruction(isCOD),
	}
}

// PaymentInstruction returns the collection text printed on every label.
func PaymentInstruction(isCOD bool) string {
	if isCOD {
		return CODInstruction
	}
	return PrepaidInstruction
}
