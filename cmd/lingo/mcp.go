package main

import (
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/lingo/internal/debug"
	"github.com/standardbeagle/lingo/internal/mcp"
)

// mcpCommand serves on stdio; stdout belongs to the protocol, so logs go to
// stderr only.
func mcpCommand(c *cli.Context) error {
	debug.SetMCPMode(true)
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	server, err := mcp.NewServer(cfg, newLogger(c, cfg))
	if err != nil {
		return err
	}
	return server.Start(c.Context)
}
