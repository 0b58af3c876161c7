package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
)

func interaction(t *testing.T, edits []model.PatchOp) Interaction {
	t.Helper()
	p, err := panels.Get(model.JurisdictionUK, model.ModeReform)
	require.NoError(t, err)
	return Interaction{
		Panel:     p,
		Situation: `{"household": {}}`,
		Response: &model.SubmitResponse{
			RequestID:  "req-1",
			URL:        "https://api.policyengine.org/uk/calculate",
			StatusCode: 200,
			Result:     model.Result(`{"status":"ok"}`),
			Snippet:    "import requests\n",
			Edits:      edits,
		},
	}
}

func TestWriteHasThreeViews(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, interaction(t, nil)))
	out := buf.String()

	assert.Contains(t, out, "# Compute impacts of reforms")
	assert.Contains(t, out, "## JSON input")
	assert.Contains(t, out, "## API output")
	assert.Contains(t, out, "## Python snippet")
	assert.Contains(t, out, "POST https://api.policyengine.org/uk/calculate")
	assert.Contains(t, out, `{"household": {}}`)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, "```python")
	assert.Contains(t, out, "submitted unchanged")
}

func TestWriteListsEdits(t *testing.T) {
	var buf bytes.Buffer
	in := interaction(t, []model.PatchOp{
		{Op: "replace", Path: "/household/people/parent/age/2023", Value: 40},
		{Op: "remove", Path: "/policy"},
	})
	in.Response.Snippet = "curl -X POST ..."
	require.NoError(t, Write(&buf, in))
	out := buf.String()

	assert.Contains(t, out, "`/household/people/parent/age/2023`")
	assert.Contains(t, out, "`40`")
	assert.Contains(t, out, "`/policy`")
	assert.Contains(t, out, "```shell")
	assert.False(t, strings.Contains(out, "submitted unchanged"))
}
