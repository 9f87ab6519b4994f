// asker implements the ports.ForAsking interface. It is used to
// confirm publishing of each feed.
package asker

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"golang.org/x/term"
)

type forAsking struct {
	dryrun bool
	force  bool
}

// New returns an asker that answers no in dry-run mode, yes when
// forced and otherwise prompts on the terminal.
func New(dryrun, force bool) ports.ForAsking {
	return &forAsking{
		dryrun: dryrun,
		force:  force,
	}
}

func (p *forAsking) Ask(ctx context.Context, format string, a ...any) bool {
	l := logger.FromContext(ctx)
	question := fmt.Sprintf(format, a...)
	if p.dryrun {
		l.Info(question+" No", "dryRun", true)
		return false
	}
	if p.force {
		l.Info(question+" Yes", "force", true)
		return true
	}
	return p.yes(ctx, question)
}

func (p *forAsking) yes(ctx context.Context, question string) bool {
	l := logger.FromContext(ctx)
	if !isTerminal() {
		l.Warn("Stdout is not a terminal, will answer no", "question", question)
		return false
	}
	choice := ""
	prompt := &survey.Select{
		Message: question,
		Options: []string{"No", "Yes", "Exit program"},
		Default: "Yes",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		l.Warn("No answer, assuming no", "question", question, "error", err)
		return false
	}
	switch choice {
	case "Yes":
		return true
	case "Exit program":
		l.Warn("Exiting")
		os.Exit(0)
	}
	return false
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
