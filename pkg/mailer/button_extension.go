package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindButton is the AST kind of ButtonNode.
var KindButton = ast.NewNodeKind("Button")

var buttonOpen = []byte("[!button|")

// ButtonNode is an inline call-to-action link written as [!button|Label](URL).
type ButtonNode struct {
	ast.BaseInline
	Label []byte
	URL   []byte
}

// Kind implements ast.Node.
func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

// Dump implements ast.Node.
func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label": string(n.Label),
		"URL":   string(n.URL),
	}, nil)
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonOpen) {
		return nil
	}
	rest := line[len(buttonOpen):]

	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd < 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}
	target := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(target, ')')
	if urlEnd < 0 {
		return nil
	}

	block.Advance(len(buttonOpen) + labelEnd + 2 + urlEnd + 1)
	return &ButtonNode{Label: rest[:labelEnd], URL: target[:urlEnd]}
}

type buttonRenderer struct{}

func (buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, func(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n := node.(*ButtonNode)
		href := n.URL
		if html.IsDangerousURL(href) {
			href = []byte("#")
		}
		_, _ = w.WriteString(`<a class="btn" href="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(href, true)))
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(util.EscapeHTML(n.Label))
		_, _ = w.WriteString(`</a>`)
		return ast.WalkContinue, nil
	})
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(buttonParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(buttonRenderer{}, 50)))
}

// NewButtonExtension returns the goldmark extension for button links.
func NewButtonExtension() goldmark.Extender { return buttonExtension{} }
