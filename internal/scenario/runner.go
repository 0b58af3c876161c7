package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"scenario-runner/internal/jsonpatch"
	"scenario-runner/internal/metrics"
	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
	"scenario-runner/internal/snippet"
)

// Calculator is the remote tax/benefit engine.
type Calculator interface {
	URL(j model.Jurisdiction) string
	Calculate(j model.Jurisdiction, requestID string, body []byte) (model.Result, int, error)
}

// Runner drives one interaction: parse the user's text, shape the request
// for the panel, call the calculator and describe the call as code.
// It holds no per-interaction state.
type Runner struct {
	calc        Calculator
	metrics     *metrics.Metrics
	logger      *slog.Logger
	snippetLang snippet.Language
	newID       func() string
}

type Option func(*Runner)

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithSnippetLanguage sets the language used when none is requested.
func WithSnippetLanguage(lang snippet.Language) Option {
	return func(r *Runner) { r.snippetLang = lang }
}

func New(calc Calculator, opts ...Option) *Runner {
	r := &Runner{
		calc:        calc,
		metrics:     metrics.New(nil),
		logger:      slog.Default(),
		snippetLang: snippet.Python,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submission is the outcome of one calculate call.
type Submission struct {
	RequestID   string
	URL         string
	RequestBody []byte
	StatusCode  int
	Result      model.Result
}

// RenderDefault returns the seed text for the panel.
func (r *Runner) RenderDefault(j model.Jurisdiction, m model.Mode) (string, error) {
	return panels.RenderDefault(j, m)
}

// Submit parses text and posts it to the panel's endpoint. Malformed text
// fails with model.ErrParse before anything is sent. Identical calls are
// sent again every time.
func (r *Runner) Submit(p *panels.Panel, text string) (*Submission, error) {
	jur, mode := string(p.Jurisdiction), string(p.Mode)

	doc, err := Parse(text)
	if err != nil {
		r.metrics.ObserveSubmission(jur, mode, metrics.OutcomeParseError)
		return nil, err
	}

	body, err := RequestBody(p, doc)
	if err != nil {
		return nil, err
	}

	id := r.newID()
	r.logger.Debug("submitting situation", "request_id", id, "panel", p.Key(), "body", string(body))

	start := time.Now()
	res, status, err := r.calc.Calculate(p.Jurisdiction, id, body)
	r.metrics.ObserveCalculate(jur, time.Since(start))
	if err != nil {
		outcome := metrics.OutcomeTransportError
		if errors.Is(err, model.ErrInvalidResponse) {
			outcome = metrics.OutcomeInvalidResponse
		}
		r.metrics.ObserveSubmission(jur, mode, outcome)
		return nil, fmt.Errorf("submit %s: %w", p.Key(), err)
	}
	r.metrics.ObserveSubmission(jur, mode, metrics.OutcomeOK)

	return &Submission{
		RequestID:   id,
		URL:         r.calc.URL(p.Jurisdiction),
		RequestBody: body,
		StatusCode:  status,
		Result:      res,
	}, nil
}

// GenerateSnippet renders code reproducing Submit for the same text. An
// empty lang uses the runner's default.
func (r *Runner) GenerateSnippet(p *panels.Panel, text string, lang snippet.Language) (string, error) {
	if lang == "" {
		lang = r.snippetLang
	}
	return snippet.Generate(lang, snippet.Call{
		URL:           r.calc.URL(p.Jurisdiction),
		Situation:     text,
		WrapHousehold: p.WrapHousehold,
	})
}

// Edits lists what the user changed relative to the panel's default.
func (r *Runner) Edits(p *panels.Panel, text string) ([]model.PatchOp, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}
	def, err := normalize(p.Default())
	if err != nil {
		return nil, err
	}
	ops := jsonpatch.Diff(def, doc, "")
	if ops == nil {
		ops = []model.PatchOp{}
	}
	return ops, nil
}

// Run performs the whole interaction and returns all three views.
func (r *Runner) Run(p *panels.Panel, text string, lang snippet.Language) (*model.SubmitResponse, error) {
	sub, err := r.Submit(p, text)
	if err != nil {
		return nil, err
	}
	code, err := r.GenerateSnippet(p, text, lang)
	if err != nil {
		return nil, err
	}
	edits, err := r.Edits(p, text)
	if err != nil {
		return nil, err
	}
	return &model.SubmitResponse{
		RequestID:   sub.RequestID,
		URL:         sub.URL,
		StatusCode:  sub.StatusCode,
		RequestBody: sub.RequestBody,
		Result:      sub.Result,
		Snippet:     code,
		Edits:       edits,
	}, nil
}

// Parse decodes user text. Numbers are kept as json.Number so they are
// re-encoded exactly as typed.
func Parse(text string) (any, error) {
	data := []byte(text)
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", model.ErrParse, syntaxDetail(data))
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrParse, err)
	}
	return doc, nil
}

func syntaxDetail(data []byte) string {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err.Error()
	}
	return "trailing data after document"
}

// RequestBody shapes doc for the panel's endpoint.
func RequestBody(p *panels.Panel, doc any) ([]byte, error) {
	var payload any = doc
	if p.WrapHousehold {
		payload = map[string]any{"household": doc}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", p.Key(), err)
	}
	return body, nil
}

func normalize(s any) (any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return Parse(string(raw))
}
