package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/longcipher/suix/pkg/generator"
	"github.com/longcipher/suix/pkg/generator/pattern"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	labelColor = color.New(color.FgMagenta, color.Bold)
	valueColor = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgRed, color.Bold)
	dimColor   = color.New(color.Faint)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner shows the tool name and version.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintln(w)
	titleColor.Fprint(w, "  ◇ SUIX")
	dimColor.Fprintf(w, "  Sui vanity address generator • v%s\n\n", version)
}

// PrintSearchInfo displays the search configuration.
func PrintSearchInfo(w io.Writer, job *generator.Job) {
	labelColor.Fprint(w, "  SEARCHING ")
	if job.Prefix != nil {
		fmt.Fprintf(w, "%s%s", valueColor.Sprint(displayPattern(job.Prefix)), dimColor.Sprint("..."))
	} else {
		dimColor.Fprint(w, "0x...")
	}
	if job.Suffix != nil {
		valueColor.Fprint(w, displayPattern(job.Suffix))
	}
	fmt.Fprintln(w)

	difficulty := job.Matcher().Difficulty()
	diff := "unknown"
	if difficulty > 0 {
		diff = "1/" + FormatFloat(difficulty)
	}
	mode := job.Scheme.String()
	if job.Mnemonic {
		mode += ", mnemonic"
	}
	dimColor.Fprintf(w, "  %s │ %d threads │ %d to find │ odds %s\n\n", mode, job.Threads, job.Target, diff)
}

func displayPattern(p *pattern.Pattern) string {
	src := p.Source()
	switch {
	case p.Kind() == pattern.KindRegex:
		return "/" + src + "/"
	case p.Role() == pattern.RolePrefix && !strings.HasPrefix(strings.ToLower(src), "0x"):
		return "0x" + src
	}
	return src
}

// PrintSummary reports the totals of a finished run.
func PrintSummary(w io.Writer, stats generator.Stats, target int) {
	elapsed := time.Duration(stats.ElapsedSecs * float64(time.Second))
	fmt.Fprintf(w, "\n  %s %s   %s %s   %s %s   %s %s\n",
		labelColor.Sprint("found"), valueColor.Sprintf("%d/%d", stats.Found, target),
		labelColor.Sprint("time"), valueColor.Sprint(FormatDuration(elapsed)),
		labelColor.Sprint("attempts"), valueColor.Sprint(FormatNumber(stats.Attempts)),
		labelColor.Sprint("rate"), valueColor.Sprint(FormatHashRate(stats.HashRate)))
}

// PrintSecretWarning reminds the user that the printed keys are live secrets.
func PrintSecretWarning(w io.Writer) {
	warnColor.Fprintln(w, "  ⚠  KEEP YOUR PRIVATE KEYS SECRET!")
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatFloat formats large counts, switching to scientific notation beyond uint64.
func FormatFloat(f float64) string {
	if f < 1e18 {
		return FormatNumber(uint64(f))
	}
	return fmt.Sprintf("%.2e", f)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
