package app

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/domain/config"
	"github.com/felixgeelhaar/winprep/internal/domain/execution"
)

// statusPrinter prints one status line per resolved step.
type statusPrinter struct {
	out    io.Writer
	styles Styles
}

func (s *statusPrinter) StepStarted(compiler.Step) {}

func (s *statusPrinter) StepFinished(result execution.StepResult) {
	_, _ = fmt.Fprintln(s.out, statusLine(s.styles, result.StepID(), result.Status(), result.Detail()))
}

func statusLine(styles Styles, id compiler.StepID, status compiler.StepStatus, detail string) string {
	symbol, style := styles.symbol(status)
	line := fmt.Sprintf("  %s %s %s", style.Render(symbol), id.String(), style.Render(status.String()))
	if detail != "" {
		line += styles.Muted.Render(": " + detail)
	}
	return line
}

func (p *Provisioner) printIntro(cfg *config.Config, steps int) {
	p.printf("%s\n\n", p.styles.Title.Render("winprep"))
	p.printf("This installs and configures the following on this machine:\n")
	for _, pkg := range cfg.Packages {
		p.printf("  - %s (%s)\n", pkg.Name, pkg.ID)
	}
	p.printf("  - git identity %s <%s>\n", cfg.Identity.Name, cfg.Identity.Email)
	p.printf("\n%d steps. Steps that are already in place are left alone.\n", steps)
}

// PrintReport outputs the final status of every step, the totals, and
// manual remediation for anything that did not succeed.
func (p *Provisioner) PrintReport(report *execution.Report) {
	s := report.Summary()

	p.printf("\n%s\n", p.styles.Title.Render("Summary"))
	for _, r := range report.Results() {
		detail := ""
		if !r.Success() {
			detail = r.Detail()
		}
		p.printf("%s\n", statusLine(p.styles, r.StepID(), r.Status(), detail))
	}
	p.printf("\n  %d satisfied, %d applied, %d failed, %d skipped, %d declined\n",
		s.Satisfied, s.Applied, s.Failed, s.Skipped, s.Declined)

	if report.Halted() {
		p.printf("\n%s\n", p.styles.Error.Render(
			fmt.Sprintf("Stopped after %s failed. Nothing else can run without it.", report.HaltedBy())))
	}

	pending := append(report.Failures(), report.Warnings()...)
	hints := make([]execution.StepResult, 0, len(pending))
	for _, r := range pending {
		if r.Remediation() != "" {
			hints = append(hints, r)
		}
	}
	if len(hints) > 0 {
		p.printf("\nTo finish manually:\n")
		for _, r := range hints {
			p.printf("  %s\n", r.StepID())
			p.printf("%s\n", p.styles.Remediation.Render(r.Remediation()))
		}
	}

	if report.Success() {
		p.printf("\n%s\n", p.styles.Success.Render("Workstation is ready."))
	}
}

// PrintPlan outputs a human-readable dry-run plan.
func (p *Provisioner) PrintPlan(plan *execution.Plan) {
	summary := plan.Summary()

	p.printf("\n%s\n\n", p.styles.Title.Render("winprep plan"))

	if summary.UpToDate() {
		p.printf("No changes needed. This machine is up to date.\n")
		return
	}

	p.printf("Steps: %d total, %d to apply, %d satisfied, %d unknown\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied, summary.Unknown)

	for _, entry := range plan.Entries() {
		exp := entry.Explanation()
		var detail string
		switch {
		case entry.Error() != nil:
			detail = entry.Error().Error()
		case entry.Status() == compiler.StatusNeedsApply:
			detail = exp.Title
		}
		p.printf("%s\n", statusLine(p.styles, entry.Step().ID(), entry.Status(), detail))

		if diff := entry.Diff(); !diff.IsEmpty() {
			p.printf("      %s\n", diff)
		}
		if entry.Status() == compiler.StatusUnknown && exp.Remediation != "" {
			p.printf("%s\n", p.styles.Remediation.Render(exp.Remediation))
		}
		if p.verbose && entry.Status() == compiler.StatusNeedsApply {
			p.printf("%s\n", p.styles.Muted.Render("      "+exp.Detail))
			if exp.Link != "" {
				p.printf("%s\n", p.styles.Muted.Render("      "+exp.Link))
			}
		}
	}

	p.printf("\nRun 'winprep' to apply this plan.\n")
}

