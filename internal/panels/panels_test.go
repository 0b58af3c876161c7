package panels

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-runner/internal/model"
)

func TestRenderDefaultIsIndentedJSON(t *testing.T) {
	for _, j := range []model.Jurisdiction{model.JurisdictionUK, model.JurisdictionUS} {
		for _, m := range []model.Mode{model.ModeBaseline, model.ModeReform} {
			text, err := RenderDefault(j, m)
			require.NoError(t, err)
			assert.Contains(t, text, "\n    \"", "%s/%s not indented with 4 spaces", j, m)

			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(text), &doc), "%s/%s", j, m)
		}
	}
}

func TestDefaultHouseholdShape(t *testing.T) {
	text, err := RenderDefault(model.JurisdictionUS, model.ModeBaseline)
	require.NoError(t, err)

	var doc struct {
		People     map[string]map[string]map[string]any `json:"people"`
		Households map[string]map[string]any            `json:"households"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &doc))

	assert.Equal(t, float64(35), doc.People["parent"]["age"]["2023"])
	assert.Equal(t, float64(30000), doc.People["parent"]["employment_income"]["2023"])
	assert.Equal(t, float64(10), doc.People["child"]["age"]["2023"])

	hh := doc.Households["household"]
	assert.Equal(t, []any{"parent", "child"}, hh["members"])
	for _, k := range []string{"household_net_income", "household_benefits", "household_tax"} {
		v, ok := hh[k].(map[string]any)
		require.True(t, ok, k)
		val, present := v["2023"]
		assert.True(t, present, k)
		assert.Nil(t, val, k)
	}
}

func TestNestingPerPanel(t *testing.T) {
	cases := []struct {
		j      model.Jurisdiction
		m      model.Mode
		nested bool
		policy string
	}{
		{model.JurisdictionUK, model.ModeBaseline, true, ""},
		{model.JurisdictionUK, model.ModeReform, true, "gov.hmrc.income_tax.rates.uk[0].rate"},
		{model.JurisdictionUS, model.ModeBaseline, false, ""},
		{model.JurisdictionUS, model.ModeReform, true, "gov.usda.snap.income.deductions.earned_income"},
	}
	for _, tc := range cases {
		t.Run(string(tc.j)+"/"+string(tc.m), func(t *testing.T) {
			text, err := RenderDefault(tc.j, tc.m)
			require.NoError(t, err)
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(text), &doc))

			_, hasHousehold := doc["household"]
			_, hasPeople := doc["people"]
			assert.Equal(t, tc.nested, hasHousehold)
			assert.Equal(t, !tc.nested, hasPeople)

			if tc.policy == "" {
				assert.NotContains(t, doc, "policy")
				return
			}
			policy := doc["policy"].(map[string]any)
			override := policy[tc.policy].(map[string]any)
			assert.Equal(t, 0.25, override["2023-01-01.2024-01-01"])
		})
	}
}

func TestOnlyUSBaselineWraps(t *testing.T) {
	for key, p := range registry {
		want := key == "us/baseline"
		assert.Equal(t, want, p.WrapHousehold, key)
	}
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	p, err := Get(model.JurisdictionUK, model.ModeBaseline)
	require.NoError(t, err)

	first, ok := p.Default().(model.NestedSituation)
	require.True(t, ok)
	first.Household.People.Parent.Age["2023"] = 99

	text, err := Render(p)
	require.NoError(t, err)
	assert.False(t, strings.Contains(text, "99"))
}

func TestRenderDefaultKeepsSeedOrder(t *testing.T) {
	for _, j := range []model.Jurisdiction{model.JurisdictionUK, model.JurisdictionUS} {
		for _, m := range []model.Mode{model.ModeBaseline, model.ModeReform} {
			text, err := RenderDefault(j, m)
			require.NoError(t, err)

			before := func(a, b string) {
				ia, ib := strings.Index(text, a), strings.Index(text, b)
				require.NotEqual(t, -1, ia, a)
				require.NotEqual(t, -1, ib, b)
				assert.Less(t, ia, ib, "%s/%s: %s should precede %s", j, m, a, b)
			}
			before(`"people"`, `"households"`)
			before(`"parent"`, `"child"`)
			before(`"age"`, `"employment_income"`)
			before(`"members"`, `"household_net_income"`)
			before(`"household_net_income"`, `"household_benefits"`)
			before(`"household_benefits"`, `"household_tax"`)
			if m == model.ModeReform {
				before(`"households"`, `"policy"`)
			}
		}
	}

	text, err := RenderDefault(model.JurisdictionUS, model.ModeBaseline)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "{\n    \"people\": {\n        \"parent\""), text)
}

func TestForJurisdictionOrder(t *testing.T) {
	ps := ForJurisdiction(model.JurisdictionUS)
	require.Len(t, ps, 2)
	assert.Equal(t, model.ModeBaseline, ps[0].Mode)
	assert.True(t, ps[0].Expanded)
	assert.Equal(t, model.ModeReform, ps[1].Mode)
	assert.False(t, ps[1].Expanded)

	assert.Empty(t, ForJurisdiction("fr"))
}
