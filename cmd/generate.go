package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/export"
	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/store"
)

func promptOptions(c *cli.Command, cfg *persona.Config) builder.PromptOptions {
	opts := builder.DefaultPromptOptions(cfg)
	if c.IsSet("few-shots") {
		opts.IncludeFewShots = c.Bool("few-shots")
	}
	return opts
}

func printMarkdown(e *env, md string, render bool) error {
	if !render {
		e.println(md)
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	e.printf("%s", out)
	return nil
}

func handleGenerate(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	opts := promptOptions(c, cfg)
	artifacts := builder.Generate(cfg, opts, time.Now())

	if c.Bool("enhance") {
		res := e.enhancer(c).PolishPrompt(ctx, cfg, opts)
		if res.Notice != "" {
			log.Warn().Msg(res.Notice)
		}
		artifacts = artifacts.WithSystemPrompt(res.SystemPrompt)
		if res.Enhanced {
			e.println("✨ Prompt polished")
		}
	}

	store.SaveArtifacts(ctx, e.store, artifacts)

	e.printf("Generated persona artifacts for %s\n", cfg.Name())
	e.printf("  system prompt: %d chars\n", len(artifacts.SystemPrompt))
	e.printf("  cheatsheet:    %d chars\n", len(artifacts.Cheatsheet))
	if artifacts.IncludeFewShots {
		e.println("  few-shot examples embedded")
	} else {
		e.println("  few-shot examples not embedded")
	}
	e.println("Run 'streampersona export' to write the files")
	return nil
}

func handlePrompt(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	return printMarkdown(e, builder.BuildSystemPrompt(cfg, promptOptions(c, cfg)), c.Bool("render"))
}

func handleCheatsheet(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return printMarkdown(e, builder.BuildCheatsheet(e.config(ctx)), c.Bool("render"))
}

func handleExport(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	artifacts := store.LoadArtifacts(ctx, e.store)
	if artifacts == nil {
		return fmt.Errorf("no generated artifacts; run 'streampersona generate' first")
	}

	paths, err := export.WriteArtifacts(c.String("out"), artifacts, c.Bool("yaml"))
	if err != nil {
		return err
	}
	for _, p := range paths {
		e.printf("📄 %s\n", p)
	}
	return nil
}

func handlePreview(ctx context.Context, c *cli.Command) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.config(ctx)
	replies := builder.BuildPreviewReplies(cfg)
	if c.Bool("enhance") {
		res := e.enhancer(c).EnhancePreviews(ctx, cfg)
		if res.Notice != "" {
			log.Warn().Msg(res.Notice)
		}
		replies = res.Previews
	}

	title := cases.Title(language.English)
	for i, reply := range replies {
		e.printf("%s %s\n", infoLabel(title.String(builder.PreviewScenarios[i])+":"), reply)
	}

	if dir := c.String("speak"); dir != "" {
		return speakPreviews(ctx, e, dir, replies)
	}
	return nil
}
