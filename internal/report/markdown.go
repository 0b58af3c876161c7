// Package report renders one interaction as a Markdown document with the
// same three views the page shows: input, API output and code.
package report

import (
	"bytes"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/nao1215/markdown"

	"scenario-runner/internal/model"
	"scenario-runner/internal/panels"
)

// Interaction is everything a report needs.
type Interaction struct {
	Panel     *panels.Panel
	Situation string
	Response  *model.SubmitResponse
}

// Write renders in to w.
func Write(w io.Writer, in Interaction) error {
	md := markdown.NewMarkdown(w)
	p := in.Panel
	resp := in.Response

	md.H1(p.Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Jurisdiction", "`" + string(p.Jurisdiction) + "`"},
			{"Mode", string(p.Mode)},
			{"Endpoint", "`POST " + resp.URL + "`"},
			{"Status", strconv.Itoa(resp.StatusCode)},
			{"Request ID", "`" + resp.RequestID + "`"},
		},
	})
	md.PlainText("")

	md.H2("JSON input")
	md.PlainText("")
	md.PlainText("*" + p.Caption + "*")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlight("json"), in.Situation)
	md.PlainText("")
	writeEdits(md, resp.Edits)

	md.H2("API output")
	md.PlainText("")
	md.PlainText("*" + panels.OutputCaption() + "*")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlight("json"), indent(resp.Result))
	md.PlainText("")

	md.H2(p.SnippetTab)
	md.PlainText("")
	md.CodeBlocks(snippetSyntax(resp.Snippet), resp.Snippet)
	md.PlainText("")

	return md.Build()
}

func writeEdits(md *markdown.Markdown, edits []model.PatchOp) {
	md.H3("Changes from the default")
	md.PlainText("")
	if len(edits) == 0 {
		md.Note("The default situation was submitted unchanged.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(edits))
	for _, op := range edits {
		value := ""
		if op.Op != "remove" {
			b, err := json.Marshal(op.Value)
			if err == nil {
				value = "`" + string(b) + "`"
			}
		}
		rows = append(rows, []string{op.Op, "`" + op.Path + "`", value})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Op", "Path", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func indent(raw model.Result) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func snippetSyntax(code string) markdown.SyntaxHighlight {
	if len(code) >= 4 && code[:4] == "curl" {
		return markdown.SyntaxHighlight("shell")
	}
	return markdown.SyntaxHighlight("python")
}
