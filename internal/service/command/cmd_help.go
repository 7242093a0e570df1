package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/escalation"
)

type HelplineCommand struct {
	formatter *ResponseFormatter
}

func NewHelplineCommand() core.Command {
	return &HelplineCommand{formatter: NewResponseFormatter()}
}

func (c *HelplineCommand) Name() string {
	return "helpline"
}

func (c *HelplineCommand) Description() string {
	return "Show crisis helpline numbers"
}

func (c *HelplineCommand) Execute(context.Context, string, []string) (string, error) {
	return c.formatter.Section("📞", "Need to talk to someone now?", strings.TrimSpace(escalation.Helpline)), nil
}

type HelpCommand struct {
	router    core.CmdRouter
	formatter *ResponseFormatter
}

func NewHelpCommand(router core.CmdRouter) core.Command {
	return &HelpCommand{
		router:    router,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(context.Context, string, []string) (string, error) {
	cmds := c.router.ListCommands()
	items := make([]string, len(cmds))
	for i, cmd := range cmds {
		items[i] = fmt.Sprintf("**/%s**  %s", cmd.Name(), cmd.Description())
	}

	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Tip("Anything that is not a command goes straight to the chat."),
	), nil
}
