package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/daikw/streampersona/internal/consistency"
	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/store"
)

var (
	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	infoLabel = color.New(color.FgCyan).SprintFunc()
	okLabel   = color.New(color.FgGreen).SprintFunc()
	dimText   = color.New(color.Faint).SprintFunc()
)

func severityLabel(s consistency.Severity) string {
	if s == consistency.SeverityWarning {
		return warnLabel("WARN")
	}
	return infoLabel("INFO")
}

func printIssues(e *env, issues []consistency.Issue) {
	if len(issues) == 0 {
		e.println(okLabel("✔ No consistency issues"))
		return
	}
	for _, issue := range issues {
		e.printf("%s %s\n", severityLabel(issue.Severity), issue.ID)
		e.printf("     %s\n", issue.Message)
		for i, r := range issue.Resolutions {
			e.printf("     %s %s\n", dimText(fmt.Sprintf("[%d]", i+1)), r.Label)
		}
	}
}

// printIssueSummary prints a one-line nudge after a mutation
func printIssueSummary(e *env, cfg *persona.Config) {
	if n := len(consistency.Evaluate(cfg)); n > 0 {
		e.printf("%s %d consistency issue(s); run 'streampersona check'\n", warnLabel("!"), n)
	}
}

func handleCheck(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	printIssues(e, consistency.Evaluate(e.config(ctx)))
	return nil
}

func handleFix(ctx context.Context, c *cli.Command) error {
	issueID := c.Args().Get(0)
	if issueID == "" {
		return fmt.Errorf("issue id is required (see 'streampersona check')")
	}

	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	option := int(c.Int("option"))
	fixed, err := consistency.Apply(cfg, issueID, option-1)
	if err != nil {
		if errors.Is(err, consistency.ErrUnknownResolution) {
			return fmt.Errorf("%w (options are numbered from 1)", err)
		}
		return err
	}

	store.SaveConfig(ctx, e.store, fixed)
	e.printf("%s applied option %d for %s\n", okLabel("✔"), option, issueID)
	printIssues(e, consistency.Evaluate(fixed))
	return nil
}
