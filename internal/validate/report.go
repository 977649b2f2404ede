package validate

// report accumulates findings in discovery order.
type report struct {
	quiet    bool
	findings []Finding
}

func (r *report) add(f Finding) {
	if r.quiet && f.Priority == Parameter {
		return
	}
	r.findings = append(r.findings, f)
}

func (r *report) addKind(kind MessageKind, line, endLine int) {
	r.add(Finding{Message: kind, Line: line, EndLine: endLine, Priority: kind.Priority()})
}

func (r *report) result() Result {
	if len(r.findings) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, Findings: r.findings}
}
