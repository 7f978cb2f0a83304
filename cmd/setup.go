package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/store"
)

var heading = color.New(color.FgMagenta, color.Bold).SprintFunc()

const maxAttempts = 3

func handleInit(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	if c.Bool("defaults") {
		store.SaveConfig(ctx, e.store, persona.Default())
		e.println("Stored the default persona. Tweak it with 'streampersona set'.")
		return nil
	}

	fields := persona.QuickFields()
	if c.Bool("all") {
		fields = persona.Fields()
	}

	cfg := e.config(ctx)
	q := &questionnaire{env: e, scanner: bufio.NewScanner(e.in)}
	answered, err := q.run(cfg, fields)
	if err != nil {
		return err
	}

	store.SaveConfig(ctx, e.store, cfg)
	log.Debug().Int("answered", answered).Int("fields", len(fields)).Msg("Questionnaire finished")
	e.printf("\nSaved persona %s (%d answers). Next: 'streampersona check' and 'streampersona generate'.\n", cfg.Name(), answered)
	printIssueSummary(e, cfg)
	return nil
}

type questionnaire struct {
	env     *env
	scanner *bufio.Scanner
}

var errEndOfInput = errors.New("end of input")

// run asks every field in order; an empty answer keeps the current value.
// End of input stops early and keeps what was answered.
func (q *questionnaire) run(cfg *persona.Config, fields []persona.Field) (int, error) {
	answered := 0
	section := ""
	for _, f := range fields {
		if s, _, _ := strings.Cut(f.Path, "."); s != section {
			section = s
			q.env.printf("\n%s\n", heading(strings.ToUpper(strings.ReplaceAll(section, "_", " "))))
		}

		changed, err := q.ask(cfg, f)
		if errors.Is(err, errEndOfInput) {
			break
		}
		if err != nil {
			return answered, err
		}
		if changed {
			answered++
		}
	}
	return answered, nil
}

func (q *questionnaire) ask(cfg *persona.Config, f persona.Field) (bool, error) {
	q.env.printf("%s [%s]\n", f.Label, f.Get(cfg))
	for i, choice := range f.Choices {
		q.env.printf("  %d) %s\n", i+1, choice)
	}

	for range maxAttempts {
		q.env.printf("> ")
		if !q.scanner.Scan() {
			if err := q.scanner.Err(); err != nil {
				return false, fmt.Errorf("failed to read answer: %w", err)
			}
			return false, errEndOfInput
		}

		raw := strings.TrimSpace(q.scanner.Text())
		if raw == "" {
			return false, nil
		}
		if err := f.Set(cfg, resolveChoices(f, raw)); err != nil {
			q.env.printf("%s %v\n", warnLabel("!"), err)
			continue
		}
		return true, nil
	}
	q.env.printf("%s keeping %s\n", dimText("too many attempts,"), f.Get(cfg))
	return false, nil
}

// resolveChoices lets numbered answers stand in for choice names,
// e.g. "1, 3" for a multi-choice field
func resolveChoices(f persona.Field, raw string) string {
	if len(f.Choices) == 0 {
		return raw
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if n, err := strconv.Atoi(p); err == nil && n >= 1 && n <= len(f.Choices) {
			p = f.Choices[n-1]
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}
