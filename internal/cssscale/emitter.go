package cssscale

import (
	"strings"

	"go.uber.org/zap"
)

// Emitter renders the scaled override of parsed rules. Only rules with at
// least one changed declaration produce output.
type Emitter struct {
	Scaler Scaler

	// MinWidth is the outer activation width, used by the nested @media filter.
	MinWidth int

	// KeepNestedMedia disables the nested @media filter.
	KeepNestedMedia bool

	log *zap.Logger
}

// NewEmitter creates an emitter. A nil logger disables logging.
func NewEmitter(scaler Scaler, minWidth int, keepNestedMedia bool, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		Scaler:          scaler,
		MinWidth:        minWidth,
		KeepNestedMedia: keepNestedMedia,
		log:             log.Named("emitter"),
	}
}

// EmitStylesheet renders every top-level rule of sheet at the given indent,
// in source order. file names the source in examples.
func (e *Emitter) EmitStylesheet(sheet *Stylesheet, indent int, file string, rep *FileReport, run *RunReport) string {
	var sb strings.Builder
	for _, rule := range sheet.Rules {
		sb.WriteString(e.EmitRule(rule, indent, file, rep, run))
	}
	return sb.String()
}

// EmitRule renders one rule, or returns "" when nothing in it changed.
func (e *Emitter) EmitRule(rule Rule, indent int, file string, rep *FileReport, run *RunReport) string {
	switch r := rule.(type) {
	case *StyleRule:
		return e.emitDeclarationBlock(r.Selector, r.Selector, r.Declarations, indent, file, rep, run)

	case *AtRule:
		if isMediaKeyword(r.Keyword) && !e.KeepNestedMedia && IsMobileOnly(r.Prelude, e.MinWidth) {
			rep.NestedMediaSkipped++
			e.log.Debug("Skipping mobile-only @media",
				zap.String("file", file),
				zap.Int("line", r.Line),
				zap.String("prelude", r.Prelude))
			return ""
		}

		header := atRuleHeader(r)
		if len(r.Rules) > 0 {
			return e.emitNested(r, header, indent, file, rep, run)
		}
		return e.emitDeclarationBlock(header, header, r.Declarations, indent, file, rep, run)
	}

	return ""
}

// emitNested renders the children of a rule-list at-rule and wraps them only
// when at least one child produced output.
func (e *Emitter) emitNested(r *AtRule, header string, indent int, file string, rep *FileReport, run *RunReport) string {
	var children strings.Builder
	for _, child := range r.Rules {
		children.WriteString(e.EmitRule(child, indent+2, file, rep, run))
	}
	if children.Len() == 0 {
		return ""
	}

	ind := strings.Repeat(" ", indent)
	return ind + header + " {\n" + children.String() + ind + "}\n"
}

// emitDeclarationBlock renders "head { changed declarations }" for a style
// rule or a declaration-list at-rule. selector is the example context.
func (e *Emitter) emitDeclarationBlock(head, selector string, decls []Declaration, indent int, file string, rep *FileReport, run *RunReport) string {
	ind := strings.Repeat(" ", indent)

	var lines []string
	for _, d := range decls {
		ctx := Context{File: file, Selector: selector, Property: d.Name}
		value, changed, replaced := e.Scaler.Scale(d.Value, ctx, run)
		if !changed {
			continue
		}

		imp := ""
		if d.Important {
			imp = " !important"
		}
		lines = append(lines, ind+"  "+d.Name+": "+strings.TrimSpace(Serialize(collapseWhitespace(value)))+imp+";")

		rep.DeclsChanged++
		rep.PxReplaced += replaced
		run.countDeclaration(d.Name)
	}

	if len(lines) == 0 {
		return ""
	}

	rep.RulesEmitted++
	return ind + head + " {\n" + strings.Join(lines, "\n") + "\n" + ind + "}\n"
}

// atRuleHeader renders "@keyword prelude".
func atRuleHeader(r *AtRule) string {
	if r.Prelude == "" {
		return "@" + r.Keyword
	}
	return "@" + r.Keyword + " " + r.Prelude
}
