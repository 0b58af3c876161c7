package handler

import (
	"bytes"
	"html/template"

	"github.com/valyala/fasthttp"

	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
)

type panelView struct {
	Key           string
	Jurisdiction  string
	Mode          string
	Title         string
	Caption       string
	InputLabel    string
	SnippetTab    string
	OutputCaption string
	Expanded      bool
	Default       string
}

type pageView struct {
	Jurisdiction string
	Error        string
	Panels       []panelView
}

// handlePage resolves the jurisdiction once from ?mode= and renders its
// panels. Each panel submits its default on load, then on every edit.
func (h *Handler) handlePage(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	j, err := model.ParseJurisdiction(string(ctx.QueryArgs().Peek("mode")), h.defaultJurisdiction)
	if err != nil {
		h.renderPage(ctx, fasthttp.StatusBadRequest, pageView{Error: err.Error()})
		return
	}

	view := pageView{Jurisdiction: string(j)}
	for _, p := range panels.ForJurisdiction(j) {
		text, err := panels.Render(p)
		if err != nil {
			h.fail(ctx, err)
			return
		}
		view.Panels = append(view.Panels, panelView{
			Key:           p.Key(),
			Jurisdiction:  string(p.Jurisdiction),
			Mode:          string(p.Mode),
			Title:         p.Title,
			Caption:       p.Caption,
			InputLabel:    p.InputLabel,
			SnippetTab:    p.SnippetTab,
			OutputCaption: panels.OutputCaption(),
			Expanded:      p.Expanded,
			Default:       text,
		})
	}

	h.renderPage(ctx, fasthttp.StatusOK, view)
}

func (h *Handler) renderPage(ctx *fasthttp.RequestCtx, status int, view pageView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(buf.Bytes())
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>PolicyEngine API demo</title>
<style>
body { font-family: "Roboto", sans-serif; font-weight: 500; margin: 0 1rem; }
textarea { width: 100%; height: 300px; font-family: monospace; }
pre { background: #f5f5f5; padding: .5rem; overflow: auto; }
.tabs button.active { font-weight: 700; }
.tab { display: none; }
.tab.active { display: block; }
.error { color: #b00020; }
</style>
</head>
<body data-jurisdiction="{{.Jurisdiction}}">
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{range .Panels}}
<details class="panel" data-jurisdiction="{{.Jurisdiction}}" data-mode="{{.Mode}}"{{if .Expanded}} open{{end}}>
  <summary>{{.Title}}</summary>
  <div class="tabs">
    <button type="button" data-tab="input" class="active">JSON input</button>
    <button type="button" data-tab="output">API output</button>
    <button type="button" data-tab="snippet">{{.SnippetTab}}</button>
  </div>
  <div class="tab active" data-tab="input">
    <p><small>{{.Caption}}</small></p>
    <label>{{.InputLabel}}<textarea spellcheck="false">{{.Default}}</textarea></label>
  </div>
  <div class="tab" data-tab="output">
    <p><small>{{.OutputCaption}}</small></p>
    <pre class="output"></pre>
  </div>
  <div class="tab" data-tab="snippet">
    <pre class="snippet"></pre>
  </div>
</details>
{{end}}
<script>
document.querySelectorAll(".panel").forEach(function (panel) {
  var base = "/api/" + panel.dataset.jurisdiction + "/" + panel.dataset.mode;
  var input = panel.querySelector("textarea");
  var output = panel.querySelector(".output");
  var code = panel.querySelector(".snippet");

  panel.querySelectorAll(".tabs button").forEach(function (btn) {
    btn.addEventListener("click", function () {
      panel.querySelectorAll("[data-tab]").forEach(function (el) {
        el.classList.toggle("active", el.dataset.tab === btn.dataset.tab);
      });
    });
  });

  function showError(message) {
    output.classList.add("error");
    output.textContent = message;
    code.textContent = "";
  }

  function submit() {
    fetch(base + "/submit", { method: "POST", body: input.value })
      .then(function (r) {
        return r.text().then(function (text) {
          try {
            return JSON.parse(text);
          } catch (e) {
            throw new Error(r.status + " " + r.statusText + ": " + text);
          }
        });
      })
      .then(function (body) {
        if (body.message !== undefined && body.result === undefined) {
          showError(body.message);
          return;
        }
        output.classList.remove("error");
        output.textContent = JSON.stringify(body.result, null, 4);
        code.textContent = body.snippet;
      })
      .catch(function (err) {
        showError(err.message);
      });
  }
  input.addEventListener("change", submit);
  submit();
});
</script>
</body>
</html>
`))
