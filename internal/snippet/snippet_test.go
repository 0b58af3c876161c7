package snippet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ukURL = "https://api.policyengine.org/uk/calculate"

func TestPythonSnippet(t *testing.T) {
	text := "{\n    \"household\": {}\n}"
	out, err := Generate(Python, Call{URL: ukURL, Situation: text})
	require.NoError(t, err)

	assert.Contains(t, out, `requests.post("`+ukURL+`", json=situation)`)
	assert.Contains(t, out, "json.loads(r'''"+text+"''')")
	assert.Contains(t, out, "print(json.dumps(result, indent=4))")
}

func TestPythonSnippetWrapsHousehold(t *testing.T) {
	out, err := Generate(Python, Call{
		URL:           "https://api.policyengine.org/us/calculate",
		Situation:     `{"people":{}}`,
		WrapHousehold: true,
	})
	require.NoError(t, err)
	assert.Contains(t, out, `json={"household": situation}`)
}

func TestCurlSnippet(t *testing.T) {
	out, err := Generate(Curl, Call{URL: ukURL, Situation: `{"a": "<b>&"}`})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `curl -X POST "`+ukURL+`"`))
	// text/template must not escape the body
	assert.Contains(t, out, `{"a": "<b>&"}`)

	out, err = Generate(Curl, Call{URL: ukURL, Situation: `{}`, WrapHousehold: true})
	require.NoError(t, err)
	assert.Contains(t, out, `{"household": {}}`)
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"": Python, "PY": Python, "curl": Curl, "sh": Curl} {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLanguage("cobol")
	assert.Error(t, err)

	_, err = Generate("cobol", Call{})
	assert.Error(t, err)
}
