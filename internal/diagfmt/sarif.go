package diagfmt

import (
	"encoding/json"
	"io"

	"frtypo/internal/diag"
	"frtypo/internal/source"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

// sarifLevel: applied fixes are notes, findings are warnings.
func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevFix:
		return "note"
	case diag.SevError:
		return "error"
	default:
		return "warning"
	}
}

// Sarif writes the records as a SARIF 2.1.0 log, one rule per category.
// Offsets of findings refer to the document as it stood when the rule ran.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	rules := make([]sarifRule, 0, diag.NumCategories+1)
	for _, code := range diag.Categories() {
		rules = append(rules, sarifRule{ID: code.ID(), ShortDescription: sarifMessage{Text: code.Title()}})
	}
	rules = append(rules, sarifRule{ID: diag.StructUnterminated.ID(), ShortDescription: sarifMessage{Text: "Document structure"}})

	results := make([]sarifResult, 0, bag.Len())
	for _, rec := range bag.Items() {
		uri := pathOf(fs, rec, PathModeRelative)
		region := sarifRegion{
			StartLine:   rec.Pos.Line,
			StartColumn: rec.Pos.Col,
			ByteOffset:  rec.Primary.Start,
			ByteLength:  rec.Primary.End - rec.Primary.Start,
		}
		res := sarifResult{
			RuleID:  rec.Code.ID(),
			Level:   sarifLevel(rec.Severity),
			Message: sarifMessage{Text: rec.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{URI: uri},
				Region:           region,
			}}},
		}
		if rec.Severity == diag.SevWarning && rec.Code.IsRule() {
			res.Fixes = []sarifFix{{
				Description: sarifMessage{Text: rec.Message},
				ArtifactChanges: []sarifArtifactChange{{
					ArtifactLocation: sarifArtifact{URI: uri},
					Replacements: []sarifReplacement{{
						DeletedRegion:   region,
						InsertedContent: sarifMessage{Text: rec.After},
					}},
				}},
			}}
		}
		results = append(results, res)
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    meta.ToolName,
				Version: meta.ToolVersion,
				Rules:   rules,
			}},
			Invocations: []sarifInvocation{{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: !bag.HasErrors(),
			}},
			Results: results,
		}},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(log)
}
