package alto

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParseOptions controls how strictly geometry attributes are validated
type ParseOptions struct {
	// Tolerant treats missing geometry attributes on String and Illustration
	// elements as zero instead of failing. Values that are present but not
	// numeric are rejected either way.
	Tolerant bool
}

// ParseFile reads the ALTO file at path into a Document.
// It fails with ErrNotFound when the file cannot be opened and with ErrParse
// when the XML or any required geometry attribute is invalid.
func ParseFile(path string, opts ParseOptions) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NotFoundError(path, err)
	}
	defer f.Close()

	doc, err := decode(f, opts)
	if err != nil {
		return nil, ParseError(path, err)
	}
	return doc, nil
}

// Parse converts raw ALTO XML into a Document
func Parse(r io.Reader, opts ParseOptions) (*Document, error) {
	doc, err := decode(r, opts)
	if err != nil {
		return nil, ParseError("", err)
	}
	return doc, nil
}

// decode walks the token stream once. Elements are matched on their local
// name, so any (or no) ALTO namespace declaration yields the same result.
func decode(r io.Reader, opts ParseOptions) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{
		TextBlocks:    []TextBlock{},
		Illustrations: []Illustration{},
		StrayStrings:  []StrayString{},
	}

	// Indexes into doc.TextBlocks of the blocks currently open
	var open []int
	depth := 0
	seenRoot := false
	stringCount := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && seenRoot {
				return nil, fmt.Errorf("unexpected element <%s> after document root", t.Name.Local)
			}
			seenRoot = true
			depth++

			switch t.Name.Local {
			case TextBlock{}.Element():
				block, err := processTextBlock(t)
				if err != nil {
					return nil, fmt.Errorf("%s #%d: %w", t.Name.Local, len(doc.TextBlocks), err)
				}
				doc.TextBlocks = append(doc.TextBlocks, block)
				open = append(open, len(doc.TextBlocks)-1)
			case String{}.Element():
				str, err := processString(t, opts)
				if err != nil {
					return nil, fmt.Errorf("%s #%d: %w", t.Name.Local, stringCount, err)
				}
				stringCount++
				if len(open) == 0 {
					doc.StrayStrings = append(doc.StrayStrings, StrayString{String: str, BlockIndex: len(doc.TextBlocks)})
					continue
				}
				idx := open[len(open)-1]
				doc.TextBlocks[idx].Strings = append(doc.TextBlocks[idx].Strings, str)
			case Illustration{}.Element():
				ill, err := processIllustration(t, opts)
				if err != nil {
					return nil, fmt.Errorf("%s #%d: %w", t.Name.Local, len(doc.Illustrations), err)
				}
				doc.Illustrations = append(doc.Illustrations, ill)
			}

		case xml.EndElement:
			depth--
			if t.Name.Local == (TextBlock{}).Element() && len(open) > 0 {
				open = open[:len(open)-1]
			}

		case xml.CharData:
			if depth == 0 && seenRoot && len(strings.TrimSpace(string(t))) > 0 {
				return nil, errors.New("unexpected text after document root")
			}
		}
	}

	if !seenRoot {
		return nil, errors.New("no root element found")
	}
	return doc, nil
}

// processTextBlock extracts the block ID and its optional geometry
func processTextBlock(se xml.StartElement) (TextBlock, error) {
	block := TextBlock{
		ID:      getAttrVal(se, "ID"),
		Raw:     rawGeometry(se),
		Strings: []String{},
	}

	// Block geometry is optional, but must be valid when present
	geom, err := parseGeometry(block.Raw, true)
	if err != nil {
		return block, err
	}
	block.Geometry = geom
	return block, nil
}

// processString extracts the token content and its required geometry
func processString(se xml.StartElement, opts ParseOptions) (String, error) {
	str := String{Content: getAttrVal(se, "CONTENT")}

	geom, err := parseGeometry(rawGeometry(se), opts.Tolerant)
	if err != nil {
		return str, err
	}
	str.Geometry = geom
	return str, nil
}

// processIllustration extracts the region ID and its required geometry
func processIllustration(se xml.StartElement, opts ParseOptions) (Illustration, error) {
	ill := Illustration{ID: getAttrVal(se, "ID")}

	geom, err := parseGeometry(rawGeometry(se), opts.Tolerant)
	if err != nil {
		return ill, err
	}
	ill.Geometry = geom
	return ill, nil
}
