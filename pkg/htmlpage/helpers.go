package htmlpage

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gardar/altopress/pkg/alto"
)

var nopLogger = zerolog.Nop()

// getLogger returns the configured logger, or a logger that discards everything
func getLogger(cfg Config) *zerolog.Logger {
	if cfg.Logger == nil {
		return &nopLogger
	}
	return cfg.Logger
}

// positionStyle places an element at the exact pixel geometry of an ALTO node
func positionStyle(g alto.Geometry) string {
	return fmt.Sprintf(
		"position: absolute; left: %dpx; top: %dpx; width: %dpx; height: %dpx;",
		g.HPos, g.VPos, g.Width, g.Height,
	)
}

// element creates a detached element node with the given attributes
func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// attr is shorthand for an un-namespaced attribute
func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// text creates a text node; escaping happens when the tree is rendered
func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// appendLine appends child followed by a newline so the output stays readable
func appendLine(parent, child *html.Node) {
	parent.AppendChild(child)
	parent.AppendChild(text("\n"))
}

// imageSrc builds the img reference relative to the HTML file: the image
// directory's own name plus the file name, always with forward slashes
func imageSrc(imageDir, name string) string {
	dir := strings.TrimRight(strings.ReplaceAll(imageDir, "\\", "/"), "/")
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[i+1:]
	}
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

// illustrationName is the file name of the i-th illustration crop
func illustrationName(i int) string {
	return fmt.Sprintf("illustration_%d.png", i)
}
