package ruleset

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// xmlRuleSet mirrors the Visual Studio .ruleset layout.
type xmlRuleSet struct {
	XMLName      xml.Name    `xml:"RuleSet"`
	Name         string      `xml:"Name,attr"`
	Description  string      `xml:"Description,attr"`
	ToolsVersion string      `xml:"ToolsVersion,attr"`
	Groups       []RuleGroup `xml:"Rules"`
}

// WriteXML writes the rule set as a .ruleset document.
func (rs *RuleSet) WriteXML(w io.Writer) error {
	doc := xmlRuleSet{
		Name:         rs.Name,
		Description:  rs.Description,
		ToolsVersion: rs.ToolsVersion,
		Groups:       rs.Groups,
	}

	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="utf-8"?>`+"\n"); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding rule set: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile writes the rule set to path, replacing any existing file.
func (rs *RuleSet) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := rs.WriteXML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadXML parses a .ruleset document.
func ReadXML(r io.Reader) (*RuleSet, error) {
	var doc xmlRuleSet
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding rule set: %w", err)
	}
	groups := doc.Groups
	if groups == nil {
		groups = []RuleGroup{}
	}
	return &RuleSet{
		Name:         doc.Name,
		Description:  doc.Description,
		ToolsVersion: doc.ToolsVersion,
		Groups:       groups,
	}, nil
}

// ReadFile parses the .ruleset document at path.
func ReadFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadXML(f)
}
