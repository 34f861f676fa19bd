package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/ui/output"
	"go.trai.ch/graphcache/internal/ui/style"
)

// TextRenderer writes sessions as an indented, coloured listing for terminals.
type TextRenderer struct{}

// Format returns "text".
func (TextRenderer) Format() string { return FormatText }

// Render writes one block per result, grouped by session.
func (TextRenderer) Render(w io.Writer, sessions []domain.SessionResults) error {
	out := output.New(w)
	accent := termenv.RGBColor(string(style.Iris))
	muted := termenv.RGBColor(string(style.Slate))
	warn := termenv.RGBColor(string(style.Yellow))

	var b strings.Builder
	for i, s := range sessions {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("session %s (%s)", s.Session, plural(len(s.Results), "result"))
		b.WriteString(out.String(header).Bold().String() + "\n")
		if len(s.Results) == 0 {
			b.WriteString(out.String("  "+style.Warning+" no results").Foreground(warn).String() + "\n")
			continue
		}

		for _, r := range s.Results {
			title := fmt.Sprintf("  %s %s [%d]", style.Dot, r.Module.String(), r.ID)
			b.WriteString(out.String(title).Foreground(accent).String() + "\n")

			field := func(name, value string) {
				b.WriteString(out.String(fmt.Sprintf("      %-11s", name)).Foreground(muted).String())
				b.WriteString(value + "\n")
			}
			field("variant", r.Variant)
			field("component", displayName(r.Component))
			if r.Reason.Len() > 0 {
				field("reason", r.Reason.String())
			}
			if !r.Attributes.IsEmpty() {
				field("attributes", r.Attributes.String())
			}
			if repo, ok := r.RepositoryID(); ok {
				field("repository", repo)
			}
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Join(domain.ErrRenderFailed, err)
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
