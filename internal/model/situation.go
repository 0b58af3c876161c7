package model

import (
	"fmt"
	"strings"
)

type Jurisdiction string

const (
	JurisdictionUK Jurisdiction = "uk"
	JurisdictionUS Jurisdiction = "us"
)

// ParseJurisdiction accepts the values of the page's mode selector.
// An empty value falls back to def.
func ParseJurisdiction(s string, def Jurisdiction) (Jurisdiction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "uk":
		return JurisdictionUK, nil
	case "us":
		return JurisdictionUS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownJurisdiction, s)
}

type Mode string

const (
	ModeBaseline Mode = "baseline"
	ModeReform   Mode = "reform"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "baseline":
		return ModeBaseline, nil
	case "reform":
		return ModeReform, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Policy maps a parameter path to date-range overrides,
// e.g. "gov.hmrc.income_tax.rates.uk[0].rate" -> {"2023-01-01.2024-01-01": 0.25}.
type Policy map[string]map[string]any

// The seed types below are structs so the rendered default keeps the order a
// person would write it in: people before households, parent before child.

// Person holds per-year attribute values.
type Person struct {
	Age              map[string]any `json:"age"`
	EmploymentIncome map[string]any `json:"employment_income,omitempty"`
}

type People struct {
	Parent Person `json:"parent"`
	Child  Person `json:"child"`
}

// Household lists its members and the per-year outputs left null for the
// calculator to fill.
type Household struct {
	Members            []string       `json:"members"`
	HouseholdNetIncome map[string]any `json:"household_net_income"`
	HouseholdBenefits  map[string]any `json:"household_benefits"`
	HouseholdTax       map[string]any `json:"household_tax"`
}

type Households struct {
	Household Household `json:"household"`
}

// HouseholdDoc is the people/households pair the calculator expects.
type HouseholdDoc struct {
	People     People     `json:"people"`
	Households Households `json:"households"`
}

// NestedSituation puts the household one level down, optionally next to a
// policy reform.
type NestedSituation struct {
	Household HouseholdDoc `json:"household"`
	Policy    Policy       `json:"policy,omitempty"`
}
