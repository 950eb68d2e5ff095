package keys

import (
	"github.com/SafeMPC/pox-signer/internal/util/command"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keys",
		newGen(),
		newToken(),
	)
}
