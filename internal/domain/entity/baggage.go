package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCode = errors.New("unknown baggage identification code")

// Bag type codes (IATA baggage identification chart)
var BagTypes = map[string]string{
	"01": "HORIZONTAL DESIGN HARD SHELL",
	"02": "UPRIGHT DESIGN HARD SHELL",
	"03": "HORIZONTAL DESIGN SOFT",
	"05": "UPRIGHT DESIGN SOFT",
	"22": "UPRIGHT DESIGN",
	"23": "SMALL CABIN SIZE",
	"25": "DUFFEL/SPORTS BAG",
	"26": "LAPTOP/OVERNIGHT BAG",
	"27": "EXPANDABLE UPRIGHT",
	"29": "GARMENT BAG",
	"50": "HAT BOX",
	"61": "RUCKSACK/BACKPACK",
	"71": "BOX",
	"72": "CHRISTMAS/GIFT PARCEL",
	"73": "UMBRELLA",
	"85": "BICYCLE",
	"99": "OTHER",
}

// Colour codes
var BagColors = map[string]string{
	"BK": "BLACK",
	"BU": "BLUE",
	"BN": "BROWN",
	"BE": "BEIGE",
	"GN": "GREEN",
	"GY": "GREY",
	"MC": "MULTICOLOUR",
	"PR": "PURPLE",
	"PU": "PINK",
	"RD": "RED",
	"WT": "WHITE",
	"YW": "YELLOW",
	"CL": "CLEAR",
}

// Material codes
var BagMaterials = map[string]string{
	"D": "DUAL SOFT/HARD",
	"L": "LEATHER",
	"M": "METAL",
	"R": "RIGID PLASTIC",
	"T": "TWEED/TAPESTRY",
}

// External element codes
var BagElements = map[string]string{
	"B": "BUCKLES/STRAPS",
	"C": "COMBINATION LOCK",
	"H": "RETRACTABLE HANDLE",
	"K": "KEY LOCK",
	"S": "SHOULDER STRAP",
	"W": "WHEELS",
	"X": "NONE",
}

// BaggageIdentification is the structured form of a bag description
type BaggageIdentification struct {
	Type     string `json:"type,omitempty" bson:"type,omitempty"`
	Color    string `json:"color,omitempty" bson:"color,omitempty"`
	Material string `json:"material,omitempty" bson:"material,omitempty"`
	Element  string `json:"element,omitempty" bson:"element,omitempty"`
}

// IsEmpty reports whether no attribute was selected
func (b BaggageIdentification) IsEmpty() bool {
	return b.Type == "" && b.Color == "" && b.Material == "" && b.Element == ""
}

// Normalize upper-cases the codes and checks each selected one against its enumeration
func (b BaggageIdentification) Normalize() (BaggageIdentification, error) {
	out := BaggageIdentification{
		Type:     strings.ToUpper(strings.TrimSpace(b.Type)),
		Color:    strings.ToUpper(strings.TrimSpace(b.Color)),
		Material: strings.ToUpper(strings.TrimSpace(b.Material)),
		Element:  strings.ToUpper(strings.TrimSpace(b.Element)),
	}

	checks := []struct {
		field string
		code  string
		table map[string]string
	}{
		{"type", out.Type, BagTypes},
		{"color", out.Color, BagColors},
		{"material", out.Material, BagMaterials},
		{"element", out.Element, BagElements},
	}
	for _, check := range checks {
		if check.code == "" {
			continue
		}
		if _, ok := check.table[check.code]; !ok {
			return BaggageIdentification{}, fmt.Errorf("%w: %s %q", ErrUnknownCode, check.field, check.code)
		}
	}

	return out, nil
}

// Annotation renders the compact bracketed form, e.g. "[BT:22 CL:BK MT:D EE:W]".
// An empty selection yields an empty string.
func (b BaggageIdentification) Annotation() string {
	var parts []string
	if b.Type != "" {
		parts = append(parts, "BT:"+b.Type)
	}
	if b.Color != "" {
		parts = append(parts, "CL:"+b.Color)
	}
	if b.Material != "" {
		parts = append(parts, "MT:"+b.Material)
	}
	if b.Element != "" {
		parts = append(parts, "EE:"+b.Element)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Describe renders the selected attributes in words
func (b BaggageIdentification) Describe() string {
	var words []string
	if name, ok := BagColors[b.Color]; ok {
		words = append(words, name)
	}
	if name, ok := BagMaterials[b.Material]; ok {
		words = append(words, name)
	}
	if name, ok := BagTypes[b.Type]; ok {
		words = append(words, name)
	}
	if name, ok := BagElements[b.Element]; ok && b.Element != "X" {
		words = append(words, "WITH "+name)
	}
	return strings.Join(words, " ")
}
