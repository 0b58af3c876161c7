// Package snippet renders source code that reproduces a calculate call.
package snippet

import (
	"fmt"
	"strings"
	"text/template"
)

type Language string

const (
	Python Language = "python"
	Curl   Language = "curl"
)

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "python", "py":
		return Python, nil
	case "curl", "shell", "sh":
		return Curl, nil
	}
	return "", fmt.Errorf("unknown snippet language %q", s)
}

// Call describes the request to reproduce. Situation is interpolated
// literally, exactly as the user typed it.
type Call struct {
	URL           string
	Situation     string
	WrapHousehold bool
}

var python = template.Must(template.New("python").Parse(`import requests
import json

situation = json.loads(r'''{{.Situation}}''')
result = requests.post("{{.URL}}", json={{if .WrapHousehold}}{"household": situation}{{else}}situation{{end}}).json()
print(json.dumps(result, indent=4))
`))

var curl = template.Must(template.New("curl").Parse(`curl -X POST "{{.URL}}" \
  -H "Content-Type: application/json" \
  --data-binary @- <<'JSON'
{{if .WrapHousehold}}{"household": {{.Situation}}}{{else}}{{.Situation}}{{end}}
JSON
`))

// Generate renders c in lang.
func Generate(lang Language, c Call) (string, error) {
	var t *template.Template
	switch lang {
	case Python, "":
		t = python
	case Curl:
		t = curl
	default:
		return "", fmt.Errorf("unknown snippet language %q", lang)
	}

	var b strings.Builder
	if err := t.Execute(&b, c); err != nil {
		return "", fmt.Errorf("render %s snippet: %w", lang, err)
	}
	return b.String(), nil
}
