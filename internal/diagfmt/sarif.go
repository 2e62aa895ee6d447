package diagfmt

import (
	"encoding/json"
	"io"

	"detemplate/internal/diag"
	"detemplate/internal/source"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	ShortDescription sarifMultiformatString `json:"shortDescription"`
}

type sarifMultiformatString struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string           `json:"ruleId"`
	Level     string           `json:"level"`
	Message   sarifMessage     `json:"message"`
	Locations []sarifLocation  `json:"locations"`
	Related   []sarifRelated   `json:"relatedLocations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifRelated struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          sarifMessage          `json:"message"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

// Sarif renders bag as a SARIF 2.1.0 log, the format most CI code-scanning
// integrations (e.g. GitHub's) expect.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) {
	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{Driver: sarifDriver{
					Name:    meta.ToolName,
					Version: meta.ToolVersion,
					Rules:   sarifRules(bag),
				}},
				Results: sarifResults(bag, fs),
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(log)
}

func sarifRules(bag *diag.Bag) []sarifRule {
	if bag == nil {
		return nil
	}
	seen := make(map[string]bool)
	var rules []sarifRule
	for _, d := range bag.Items() {
		id := d.Code.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		rules = append(rules, sarifRule{ID: id, ShortDescription: sarifMultiformatString{Text: d.Code.Title()}})
	}
	return rules
}

func sarifResults(bag *diag.Bag, fs *source.FileSet) []sarifResult {
	if bag == nil {
		return nil
	}
	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		result := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocationFor(fs, d.Primary)}},
		}
		for _, note := range d.Notes {
			result.Related = append(result.Related, sarifRelated{
				PhysicalLocation: sarifPhysicalLocationFor(fs, note.Span),
				Message:          sarifMessage{Text: note.Msg},
			})
		}
		results = append(results, result)
	}
	return results
}

func sarifPhysicalLocationFor(fs *source.FileSet, span source.Span) sarifPhysicalLocation {
	uri := formatSpanPath(fs, span, PathModeRelative)
	if fs == nil {
		return sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: uri}}
	}
	start, end := fs.Resolve(span)
	return sarifPhysicalLocation{
		ArtifactLocation: sarifArtifactLocation{URI: uri},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
		},
	}
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}
