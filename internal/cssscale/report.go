package cssscale

// MaxExamples caps the before/after samples kept per run.
const MaxExamples = 12

// Example is one captured scaling instance.
type Example struct {
	File     string `json:"file"`
	Selector string `json:"selector"`
	Property string `json:"property"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

// FileReport holds the counters of one source stylesheet.
type FileReport struct {
	Path               string `json:"path"`
	DeclsChanged       int    `json:"decls_changed"`
	PxReplaced         int    `json:"px_replaced"`
	RulesEmitted       int    `json:"rules_emitted"`
	NestedMediaSkipped int    `json:"nested_media_skipped"`
	SyntaxErrors       int    `json:"syntax_errors"`
}

// RunReport echoes the run configuration and accumulates statistics while
// the emitter walks every stylesheet. It is owned by the caller of the
// emitter and passed down explicitly.
type RunReport struct {
	Scale             float64 `json:"scale"`
	MinWidth          int     `json:"min_width"`
	DPRThreshold      float64 `json:"dpr_threshold"`
	PointerFine       bool    `json:"pointer_fine"`
	ScaleHairlines    bool    `json:"scale_hairlines"`
	HairlineThreshold float64 `json:"hairline_threshold"`
	KeepNestedMedia   bool    `json:"keep_nested_media"`
	OrderSource       string  `json:"order_source"` // "manifest" or "filesystem"

	FilesScanned       int `json:"files_scanned"`
	FilesWithChanges   int `json:"files_with_changes"`
	TotalDeclsChanged  int `json:"total_decls_changed"`
	TotalPxReplaced    int `json:"total_px_replaced"`
	RulesEmitted       int `json:"rules_emitted"`
	NestedMediaSkipped int `json:"nested_media_skipped"`

	Examples   []Example                `json:"examples"`
	PerFile    []FileReport             `json:"per_file"`
	Categories map[PropertyCategory]int `json:"categories"`
	Issues     []Issue                  `json:"issues"`
}

// AddExample records ex unless the cap is reached. First come, first kept.
func (r *RunReport) AddExample(ex Example) bool {
	if r == nil || len(r.Examples) >= MaxExamples {
		return false
	}
	r.Examples = append(r.Examples, ex)
	return true
}

// countDeclaration tallies a changed declaration under its property category.
func (r *RunReport) countDeclaration(property string) {
	if r == nil {
		return
	}
	if r.Categories == nil {
		r.Categories = make(map[PropertyCategory]int)
	}
	r.Categories[categorizeProperty(property)]++
}

// AddFile folds a finished file report into the run totals. Files without a
// changed declaration only contribute their skip count.
func (r *RunReport) AddFile(rep FileReport) {
	r.FilesScanned++
	r.PerFile = append(r.PerFile, rep)
	r.NestedMediaSkipped += rep.NestedMediaSkipped

	if rep.DeclsChanged == 0 {
		return
	}
	r.FilesWithChanges++
	r.TotalDeclsChanged += rep.DeclsChanged
	r.TotalPxReplaced += rep.PxReplaced
	r.RulesEmitted += rep.RulesEmitted
}

// TouchedFiles returns the per-file reports with at least one change.
func (r *RunReport) TouchedFiles() []FileReport {
	var touched []FileReport
	for _, f := range r.PerFile {
		if f.DeclsChanged > 0 {
			touched = append(touched, f)
		}
	}
	return touched
}
