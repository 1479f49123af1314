// Package fieldex turns spreadsheet templates of unknown shape into ordered,
// typed form-field definitions.
package fieldex

import "github.com/plandoc/fieldex-go/pkg/fieldex/parser"

// Options holds the extraction thresholds. The defaults were tuned on the
// project's template set; override individual knobs only when a template
// family consistently misbehaves.
type Options struct {
	// MaxHeaderCells is the widest first row still treated as a form header.
	MaxHeaderCells int
	// MinHeaderFields triggers the question-answer fallback scan when the
	// header strategy yields fewer fields than this.
	MinHeaderFields int
	// MaxPromptLen caps header-derived prompts; MaxScanPromptLen caps
	// scanner-derived prompts (exclusive), MinScanPromptLen is the floor.
	MaxPromptLen     int
	MinScanPromptLen int
	MaxScanPromptLen int
	// MaxSampleLen is the longest row-1 sample under which a header column
	// still counts as a fillable field.
	MaxSampleLen int
	// ScanCols is the scan width of the fallback pass; EmitCols is how many
	// of those columns may yield fields.
	ScanCols int
	EmitCols int
	// SectionScanRows bounds the pre-scan for section keywords.
	SectionScanRows int
	// DefaultRole is stamped on every extracted field.
	DefaultRole string
}

// DefaultOptions returns the canonical threshold set.
func DefaultOptions() Options {
	return Options{
		MaxHeaderCells:   20,
		MinHeaderFields:  5,
		MaxPromptLen:     100,
		MinScanPromptLen: 5,
		MaxScanPromptLen: 80,
		MaxSampleLen:     50,
		ScanCols:         10,
		EmitCols:         5,
		SectionScanRows:  10,
		DefaultRole:      "ANALISTA",
	}
}

func (o Options) headerParams() parser.HeaderParams {
	return parser.HeaderParams{
		MaxHeaderCells: o.MaxHeaderCells,
		MaxPromptLen:   o.MaxPromptLen,
		MaxSampleLen:   o.MaxSampleLen,
		Role:           o.DefaultRole,
	}
}

func (o Options) scanParams() parser.ScanParams {
	return parser.ScanParams{
		ScanCols:     o.ScanCols,
		EmitCols:     o.EmitCols,
		MinPromptLen: o.MinScanPromptLen,
		MaxPromptLen: o.MaxScanPromptLen,
		Role:         o.DefaultRole,
	}
}
