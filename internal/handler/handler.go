package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
	"scenario-runner/internal/report"
	"scenario-runner/internal/scenario"
	"scenario-runner/internal/snippet"
)

// Handler serves the page and the JSON API behind it.
//
//	GET  /?mode=uk|us                       page
//	GET  /api/{jurisdiction}/{mode}/default default situation text
//	POST /api/{jurisdiction}/{mode}/submit  body: situation text
//	POST /api/{jurisdiction}/{mode}/snippet body: situation text
//	POST /api/{jurisdiction}/{mode}/report  body: situation text
//	GET  /healthz, GET /metrics
type Handler struct {
	runner              *scenario.Runner
	defaultJurisdiction model.Jurisdiction
	metrics             fasthttp.RequestHandler
	logger              *slog.Logger
}

func New(runner *scenario.Runner, defaultJurisdiction model.Jurisdiction, gatherer prometheus.Gatherer, logger *slog.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		runner:              runner,
		defaultJurisdiction: defaultJurisdiction,
		metrics:             fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		logger:              logger,
	}
}

func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch {
	case path == "/":
		h.handlePage(ctx)
	case path == "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case path == "/metrics":
		h.metrics(ctx)
	case strings.HasPrefix(path, "/api/"):
		h.handleAPI(ctx, strings.TrimPrefix(path, "/api/"))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) handleAPI(ctx *fasthttp.RequestCtx, rest string) {
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || slices.Contains(parts, "") {
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
		return
	}

	j, err := model.ParseJurisdiction(parts[0], "")
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	m, err := model.ParseMode(parts[1])
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	p, err := panels.Get(j, m)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	action := parts[2]
	if action == "default" {
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		text, err := panels.Render(p)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(text)
		return
	}

	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var lang snippet.Language
	if raw := ctx.QueryArgs().Peek("lang"); len(raw) > 0 {
		if lang, err = snippet.ParseLanguage(string(raw)); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
	}
	text := string(ctx.PostBody())

	switch action {
	case "submit":
		resp, err := h.runner.Run(p, text, lang)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, resp)
	case "snippet":
		code, err := h.runner.GenerateSnippet(p, text, lang)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString(code)
	case "report":
		resp, err := h.runner.Run(p, text, lang)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		var buf bytes.Buffer
		if err := report.Write(&buf, report.Interaction{Panel: p, Situation: text, Response: resp}); err != nil {
			h.fail(ctx, err)
			return
		}
		ctx.SetContentType("text/markdown; charset=utf-8")
		ctx.SetBody(buf.Bytes())
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

// fail surfaces err to the caller as is. Nothing is retried.
func (h *Handler) fail(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	if status >= fasthttp.StatusInternalServerError {
		h.logger.Error("request failed", "path", string(ctx.Path()), "error", err)
	}
	writeError(ctx, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrParse),
		errors.Is(err, model.ErrUnknownJurisdiction),
		errors.Is(err, model.ErrUnknownMode):
		return fasthttp.StatusBadRequest
	case errors.Is(err, model.ErrTransport),
		errors.Is(err, model.ErrInvalidResponse):
		return fasthttp.StatusBadGateway
	}
	return fasthttp.StatusInternalServerError
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
