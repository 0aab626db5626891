// Package render turns a completed dependency report into human-facing
// text. Formatting only; it derives everything from the report and never
// triggers a scan.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/depdoctor/domain"
)

// quickFixLimit caps how many batch commands the condensed summary shows.
const quickFixLimit = 3

// DependencyReport formats the full report as markdown: critical issues,
// warnings, a quick-fix command block, and the health score.
func DependencyReport(report *domain.DependencyReport) string {
	var b strings.Builder
	b.WriteString("# Dependency Status\n")

	var critical, warning []domain.MissingPackage
	for _, pkg := range report.Missing {
		if pkg.Severity == domain.SeverityCritical {
			critical = append(critical, pkg)
		} else {
			warning = append(warning, pkg)
		}
	}

	if len(critical) > 0 {
		b.WriteString("\n## Critical (Blocks Execution)\n")
		for _, pkg := range critical {
			fmt.Fprintf(&b, "\n- **%s** (%s)\n", pkg.Name, pkg.Ecosystem)
			fmt.Fprintf(&b, "  - Source: `%s`\n", pkg.DetectedFrom)
			fmt.Fprintf(&b, "  ```bash\n  %s\n  ```\n", pkg.InstallCommand)
		}
	}

	if len(warning) > 0 {
		b.WriteString("\n## Warning (Should Install)\n")
		for _, pkg := range warning {
			fmt.Fprintf(&b, "\n- **%s** (%s)\n", pkg.Name, pkg.Ecosystem)
			fmt.Fprintf(&b, "  ```bash\n  %s\n  ```\n", pkg.InstallCommand)
		}
	}

	if commands := InstallCommands(report); len(commands) > 0 {
		b.WriteString("\n## Quick Fix\n```bash\n")
		for _, cmd := range commands {
			b.WriteString(cmd)
			b.WriteByte('\n')
		}
		b.WriteString("```\n")
	}

	fmt.Fprintf(&b, "\n## Health Score: %d/100\n", report.HealthScore)
	return b.String()
}

// HealthSummary formats a condensed report: score, issue counts, and the
// primary fix commands.
func HealthSummary(report *domain.DependencyReport) string {
	var b strings.Builder
	b.WriteString("# Workspace Health\n")
	fmt.Fprintf(&b, "\n**Score:** %d/100\n", report.HealthScore)

	if len(report.Missing) == 0 {
		b.WriteString("\nAll dependencies are installed.\n")
		return b.String()
	}

	if count := report.CriticalCount(); count > 0 {
		fmt.Fprintf(&b, "\n**Critical Issues:** %d\n", count)
	}
	if count := report.WarningCount(); count > 0 {
		fmt.Fprintf(&b, "\n**Warnings:** %d\n", count)
	}

	commands := InstallCommands(report)
	if len(commands) > quickFixLimit {
		commands = commands[:quickFixLimit]
	}
	if len(commands) > 0 {
		b.WriteString("\n**Quick Fix:**\n```bash\n")
		for _, cmd := range commands {
			b.WriteString(cmd)
			b.WriteByte('\n')
		}
		b.WriteString("```\n")
	}
	return b.String()
}

// QuickStatus returns a one-line summary derived only from the health score
// and the critical/warning counts.
func QuickStatus(report *domain.DependencyReport) string {
	critical := report.CriticalCount()
	warnings := report.WarningCount()

	if critical == 0 && warnings == 0 {
		return fmt.Sprintf("Health: %d/100 | All dependencies OK", report.HealthScore)
	}

	var parts []string
	if critical > 0 {
		parts = append(parts, fmt.Sprintf("%d critical", critical))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", warnings))
	}
	return fmt.Sprintf("Health: %d/100 | %s", report.HealthScore, strings.Join(parts, ", "))
}

// InstallCommands generates shell commands for all missing packages,
// batching per ecosystem where the package manager supports it.
func InstallCommands(report *domain.DependencyReport) []string {
	byEcosystem := make(map[string][]string)
	for _, pkg := range report.Missing {
		byEcosystem[pkg.Ecosystem] = append(byEcosystem[pkg.Ecosystem], pkg.Name)
	}

	ecosystems := make([]string, 0, len(byEcosystem))
	for name := range byEcosystem {
		ecosystems = append(ecosystems, name)
	}
	sort.Strings(ecosystems)

	var commands []string
	for _, eco := range ecosystems {
		names := byEcosystem[eco]
		switch eco {
		case "npm":
			commands = append(commands, "npm install "+strings.Join(names, " "))
		case "pip":
			commands = append(commands, "pip install "+strings.Join(names, " "))
		case "gem":
			commands = append(commands, "gem install "+strings.Join(names, " "))
		case "go":
			for _, name := range names {
				commands = append(commands, "go get "+name)
			}
		case "cargo":
			for _, name := range names {
				commands = append(commands, "cargo add "+name)
			}
		case "terraform":
			commands = append(commands, "terraform get -update")
		default:
			for _, name := range names {
				commands = append(commands, fmt.Sprintf("# install %s (%s)", name, eco))
			}
		}
	}
	return commands
}
