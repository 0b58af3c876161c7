package scenario

import (
	"os"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-runner/internal/calculator"
	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
)

// findOutput walks the response looking for household output variables.
func findOutput(v any, name string) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		if out, ok := t[name].(map[string]any); ok {
			return out, true
		}
		for _, child := range t {
			if out, ok := findOutput(child, name); ok {
				return out, true
			}
		}
	case []any:
		for _, child := range t {
			if out, ok := findOutput(child, name); ok {
				return out, true
			}
		}
	}
	return nil, false
}

func TestLiveDefaultBaselines(t *testing.T) {
	if os.Getenv("POLICYENGINE_LIVE") == "" {
		t.Skip("set POLICYENGINE_LIVE=1 to call api.policyengine.org")
	}

	r := New(calculator.New(calculator.DefaultBaseURL))
	for _, j := range []model.Jurisdiction{model.JurisdictionUK, model.JurisdictionUS} {
		t.Run(string(j), func(t *testing.T) {
			p, err := panels.Get(j, model.ModeBaseline)
			require.NoError(t, err)
			text, err := r.RenderDefault(j, model.ModeBaseline)
			require.NoError(t, err)

			sub, err := r.Submit(p, text)
			require.NoError(t, err)

			var res any
			require.NoError(t, json.Unmarshal(sub.Result, &res))
			for _, name := range []string{"household_net_income", "household_benefits", "household_tax"} {
				out, ok := findOutput(res, name)
				require.True(t, ok, name)
				assert.NotNil(t, out["2023"], name)
			}
		})
	}
}
