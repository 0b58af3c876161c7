package panels

import (
	"fmt"

	json "github.com/goccy/go-json"

	"scenario-runner/internal/model"
)

const defaultYear = "2023"

func household() model.HouseholdDoc {
	return model.HouseholdDoc{
		People: model.People{
			Parent: model.Person{
				Age:              map[string]any{defaultYear: 35},
				EmploymentIncome: map[string]any{defaultYear: 30000},
			},
			Child: model.Person{
				Age: map[string]any{defaultYear: 10},
			},
		},
		Households: model.Households{
			Household: model.Household{
				Members:            []string{"parent", "child"},
				HouseholdNetIncome: map[string]any{defaultYear: nil},
				HouseholdBenefits:  map[string]any{defaultYear: nil},
				HouseholdTax:       map[string]any{defaultYear: nil},
			},
		},
	}
}

func flat() any {
	return household()
}

// nested puts people/households under "household", the shape the UK API and
// the reform endpoints take, and attaches policy when given.
func nested(policy model.Policy) any {
	return model.NestedSituation{Household: household(), Policy: policy}
}

func ukReform() model.Policy {
	return model.Policy{
		"gov.hmrc.income_tax.rates.uk[0].rate": {"2023-01-01.2024-01-01": 0.25},
	}
}

func usReform() model.Policy {
	return model.Policy{
		"gov.usda.snap.income.deductions.earned_income": {"2023-01-01.2024-01-01": 0.25},
	}
}

// RenderDefault pretty-prints the panel's seed document with a 4-space indent.
func RenderDefault(j model.Jurisdiction, m model.Mode) (string, error) {
	p, err := Get(j, m)
	if err != nil {
		return "", err
	}
	return Render(p)
}

func Render(p *Panel) (string, error) {
	out, err := json.MarshalIndent(p.Default(), "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode default for %s: %w", p.Key(), err)
	}
	return string(out), nil
}
