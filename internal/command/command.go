package command

import (
	commandHandler "blogging/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewTokenHandler)

type Command struct {
	tokenCommandHandler *commandHandler.TokenHandler
}

// NewCommand .
func NewCommand(
	tokenCommandHandler *commandHandler.TokenHandler,
) *Command {
	return &Command{
		tokenCommandHandler: tokenCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "token <postID>",
			Short: "issue a new x-token for an existing post",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				command, cleanup, err := newCmd()
				if err != nil {
					return err
				}
				defer cleanup()

				return command.tokenCommandHandler.Issue(cmd, args)
			},
		},
	)
}
