package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for slidegen.

To load completions:

Bash:
  $ source <(slidegen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ slidegen completion bash > /etc/bash_completion.d/slidegen
  # macOS:
  $ slidegen completion bash > $(brew --prefix)/etc/bash_completion.d/slidegen

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ slidegen completion zsh > "${fpath[1]}/_slidegen"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ slidegen completion fish | source

  # To load completions for each session, execute once:
  $ slidegen completion fish > ~/.config/fish/completions/slidegen.fish

PowerShell:
  PS> slidegen completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> slidegen completion powershell > slidegen.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
