package ragtext

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/gardar/altopress/pkg/alto"
)

// Unit is one cleaned text block with its metadata
type Unit struct {
	Text     string       `json:"text"`
	Metadata UnitMetadata `json:"metadata"`
}

// UnitMetadata is the metadata object of a Unit. ID and geometry are the
// source attribute strings; absent attributes serialize as null.
type UnitMetadata struct {
	PublicationDate string  `json:"publication_date"`
	NewspaperTitle  string  `json:"newspaper_title"`
	ID              *string `json:"id"`
	Height          *string `json:"height"`
	Width           *string `json:"width"`
	X               *string `json:"x"`
	Y               *string `json:"y"`
}

// GenerateFile is a high-level function that parses an ALTO file, extracts
// its units and writes them as JSON to outPath.
// Nothing is written when parsing fails.
func GenerateFile(altoPath, outPath string, meta Metadata, cfg Config, opts alto.ParseOptions) error {
	logger := getLogger(cfg)
	logger.Info().Str("alto", altoPath).Msg("Extracting RAG text from ALTO file")

	doc, err := alto.ParseFile(altoPath, opts)
	if err != nil {
		logger.Error().Err(err).Str("alto", altoPath).Msg("Could not parse ALTO file")
		return err
	}

	units := Extract(doc, meta, NewNormalizer(cfg))
	if err := WriteJSON(units, outPath); err != nil {
		logger.Error().Err(err).Str("json", outPath).Msg("Could not write RAG JSON")
		return err
	}

	logger.Info().Str("json", outPath).Int("units", len(units)).Msg("RAG JSON saved")
	return nil
}

// Extract builds one Unit per TextBlock of doc, in document order.
// Blocks whose cleaned text is empty still produce a Unit with empty text.
// Strings outside every TextBlock belong to no unit.
// A nil normalizer uses DefaultConfig.
func Extract(doc *alto.Document, meta Metadata, n *Normalizer) []Unit {
	if doc == nil {
		return []Unit{}
	}
	if n == nil {
		n = NewNormalizer(DefaultConfig())
	}
	units := make([]Unit, 0, len(doc.TextBlocks))
	for _, block := range doc.TextBlocks {
		units = append(units, Unit{
			Text:     n.Normalize(BlockText(block)),
			Metadata: blockMetadata(meta, block),
		})
	}
	return units
}

// BlockText joins the content of a block's Strings with single spaces
func BlockText(block alto.TextBlock) string {
	var builder strings.Builder
	for i, s := range block.Strings {
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(s.Content)
	}
	return builder.String()
}

// WriteJSON writes units to path as an indented JSON array. The file is
// replaced atomically, so a failed write leaves any previous file intact.
func WriteJSON(units []Unit, path string) error {
	if path == "" {
		return alto.WriteError(path, errors.New("empty output path"))
	}
	if units == nil {
		units = []Unit{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(units); err != nil {
		return alto.WriteError(path, err)
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return alto.WriteError(path, err)
	}
	return nil
}

// blockMetadata combines the caller metadata with the block's own attributes
func blockMetadata(meta Metadata, block alto.TextBlock) UnitMetadata {
	return UnitMetadata{
		PublicationDate: meta.PublicationDate,
		NewspaperTitle:  meta.NewspaperTitle,
		ID:              optional(block.ID),
		Height:          optional(block.Raw.Height),
		Width:           optional(block.Raw.Width),
		X:               optional(block.Raw.HPos),
		Y:               optional(block.Raw.VPos),
	}
}

// optional maps an absent (empty) attribute to nil
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
