package panels

import (
	"fmt"

	"scenario-runner/internal/model"
)

const (
	baselineTitle = "Compute current-law taxes and benefits"
	reformTitle   = "Compute impacts of reforms"
	outputCaption = "PolicyEngine's API computes their taxes and benefits"
)

var registry = map[string]*Panel{
	"uk/baseline": {
		Jurisdiction: model.JurisdictionUK,
		Mode:         model.ModeBaseline,
		Title:        baselineTitle,
		InputLabel:   "Situation",
		Caption:      "Describe people and households",
		SnippetTab:   "Python snippet",
		Expanded:     true,
		defaults:     func() any { return nested(nil) },
	},
	"uk/reform": {
		Jurisdiction: model.JurisdictionUK,
		Mode:         model.ModeReform,
		Title:        reformTitle,
		InputLabel:   "Situation and reform",
		Caption:      "Describe people, households and reforms",
		SnippetTab:   "Python snippet",
		defaults:     func() any { return nested(ukReform()) },
	},
	"us/baseline": {
		Jurisdiction:  model.JurisdictionUS,
		Mode:          model.ModeBaseline,
		Title:         baselineTitle,
		InputLabel:    "Situation",
		Caption:       "Describe people and households",
		SnippetTab:    "Code snippet",
		Expanded:      true,
		WrapHousehold: true,
		defaults:      flat,
	},
	"us/reform": {
		Jurisdiction: model.JurisdictionUS,
		Mode:         model.ModeReform,
		Title:        reformTitle,
		InputLabel:   "Situation and reform",
		Caption:      "Describe people, households and reforms",
		SnippetTab:   "Code snippet",
		defaults:     func() any { return nested(usReform()) },
	},
}

// OutputCaption is shown above every API output tab.
func OutputCaption() string {
	return outputCaption
}

func Get(j model.Jurisdiction, m model.Mode) (*Panel, error) {
	p, ok := registry[string(j)+"/"+string(m)]
	if !ok {
		return nil, fmt.Errorf("%w: no panel for %s/%s", model.ErrUnknownJurisdiction, j, m)
	}
	return p, nil
}

// ForJurisdiction lists the panels rendered for j, baseline first.
func ForJurisdiction(j model.Jurisdiction) []*Panel {
	var out []*Panel
	for _, m := range []model.Mode{model.ModeBaseline, model.ModeReform} {
		if p, ok := registry[string(j)+"/"+string(m)]; ok {
			out = append(out, p)
		}
	}
	return out
}
