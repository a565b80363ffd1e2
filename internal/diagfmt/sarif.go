package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"surge/internal/diag"
	"surge/internal/source"
)

const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
const sarifVersion = "2.1.0"

// sarifLog is the root SARIF 2.1.0 document.
type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool     `json:"tool"`
	Invocation *sarifInvoke  `json:"invocations,omitempty"`
	Results    []sarifResult `json:"results"`
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
	ID               string                `json:"id"`
	ShortDescription sarifMessage          `json:"shortDescription"`
	DefaultConfig    sarifRuleConfig       `json:"defaultConfiguration,omitempty"`
}

type sarifRuleConfig struct {
	Level string `json:"level"`
}

type sarifInvoke struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string           `json:"ruleId"`
	Level     string           `json:"level"`
	Message   sarifMessage     `json:"message"`
	Locations []sarifLocation  `json:"locations,omitempty"`
	RelatedLocations []sarifRelated `json:"relatedLocations,omitempty"`
}

type sarifRelated struct {
	Message  sarifMessage   `json:"message"`
	Location sarifLocation2 `json:"physicalLocation"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifLocation2 `json:"physicalLocation"`
}

type sarifLocation2 struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

// sarifLevel maps this checker's three severities onto SARIF's result.level
// vocabulary ("error", "warning", "note"); SARIF has no fourth "info" level.
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

func sarifPhysicalLocation(span source.Span, fs *source.FileSet) sarifLocation2 {
	f := fs.Get(span.File)
	uri := f.FormatPath("relative", fs.BaseDir())
	start, end := fs.Resolve(span)
	return sarifLocation2{
		ArtifactLocation: sarifArtifact{URI: uri},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
		},
	}
}

// BuildSarifLog assembles the SARIF document for bag without serializing
// it, so callers that need to post-process it (inject a fingerprint, merge
// multiple runs) can do so before encoding.
func BuildSarifLog(bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) sarifLog {
	items := bag.Items()

	ruleSeen := make(map[string]bool)
	rules := make([]sarifRule, 0, len(items))
	results := make([]sarifResult, 0, len(items))

	for _, d := range items {
		ruleID := d.Code.ID()
		if !ruleSeen[ruleID] {
			ruleSeen[ruleID] = true
			rules = append(rules, sarifRule{
				ID:               ruleID,
				ShortDescription: sarifMessage{Text: d.Code.Title()},
				DefaultConfig:    sarifRuleConfig{Level: sarifLevel(d.Severity)},
			})
		}

		result := sarifResult{
			RuleID:  ruleID,
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{
				{PhysicalLocation: sarifPhysicalLocation(d.Primary, fs)},
			},
		}
		for _, note := range d.Notes {
			result.RelatedLocations = append(result.RelatedLocations, sarifRelated{
				Message:  sarifMessage{Text: note.Msg},
				Location: sarifPhysicalLocation(note.Span, fs),
			})
		}
		results = append(results, result)
	}

	sort.SliceStable(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	return sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: "",
				Rules:          rules,
			}},
			Invocation: &sarifInvoke{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: !bag.HasErrors(),
			},
			Results: results,
		}},
	}
}

// Sarif renders bag as a SARIF 2.1.0 log, the format most CI systems
// (GitHub code scanning, Azure DevOps) ingest directly.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	log := BuildSarifLog(bag, fs, meta)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
