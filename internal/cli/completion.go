package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pypin.

Bash:
  $ source <(pypin completion bash)

Zsh:
  $ pypin completion zsh > "${fpath[1]}/_pypin"

Fish:
  $ pypin completion fish | source

PowerShell:
  PS> pypin completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Stdout)
			}
			return nil
		},
	}
}
