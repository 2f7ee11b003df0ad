package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lingo/internal/adapter"
	"github.com/standardbeagle/lingo/internal/types"
)

func classifyCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("classify takes exactly one text argument, got %d", c.NArg())
	}
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	fa, err := cfg.FrameworkAdapter()
	if err != nil {
		return err
	}

	ctx, err := types.ParseContext(c.String("context"))
	if err != nil {
		return err
	}
	if c.String("attribute") != "" && !c.IsSet("context") {
		ctx = types.ContextMarkupAttribute
	}
	meta := types.Metadata{
		Attribute:    c.String("attribute"),
		Call:         c.String("call"),
		VariableName: c.String("variable"),
	}
	if meta.VariableName != "" {
		meta.ParentKind = types.ParentVariableDeclarator
	}

	text := c.Args().First()
	cls := adapter.Classifier(fa).Classify(text, ctx, meta)

	verdict := color.New(color.FgRed, color.Bold).Sprint("skip")
	if cls.Translatable {
		verdict = color.New(color.FgGreen, color.Bold).Sprint("translate")
	}
	fmt.Fprintf(c.App.Writer, "%s [%s] %q (%s): %s\n", verdict, cls.Confidence, text, ctx, cls.Reason)
	return nil
}
