package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for vgrab.

Bash:
  # Add to ~/.bashrc:
  source <(vgrab completion bash)

Zsh:
  # Add to ~/.zshrc:
  source <(vgrab completion zsh)

  # Or install to fpath:
  vgrab completion zsh > "${fpath[1]}/_vgrab"

Fish:
  vgrab completion fish > ~/.config/fish/completions/vgrab.fish

PowerShell:
  vgrab completion powershell >> $PROFILE
`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return cmd.Help()
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	// URLs are typed or pasted, never local files
	rootCmd.ValidArgsFunction = cobra.NoFileCompletions
	configSetCmd.ValidArgsFunction = completeConfigKey
	configGetCmd.ValidArgsFunction = completeConfigKey
}

// completeConfigKey completes the key argument of config get/set
func completeConfigKey(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, key := range configKeys {
		if strings.HasPrefix(key, toComplete) {
			completions = append(completions, key)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
