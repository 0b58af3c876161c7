package panels

import "scenario-runner/internal/model"

// Panel is one interaction on the page: a jurisdiction and mode pairing with
// its own default document and request shaping. Wrapping is configured per
// panel and never inferred from the payload.
type Panel struct {
	Jurisdiction model.Jurisdiction
	Mode         model.Mode
	Title        string
	InputLabel   string
	Caption      string
	SnippetTab   string
	Expanded     bool

	// WrapHousehold posts {"household": <situation>} instead of the
	// situation itself.
	WrapHousehold bool

	defaults func() any
}

// Key identifies a panel, e.g. "us/baseline".
func (p *Panel) Key() string {
	return string(p.Jurisdiction) + "/" + string(p.Mode)
}

// Default returns a fresh copy of the panel's seed document.
func (p *Panel) Default() any {
	return p.defaults()
}
