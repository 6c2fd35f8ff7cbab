// Package cli arma los comandos del binario: API HTTP, bot de Telegram,
// chat por terminal y consultas de perfiles.
package cli

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dogdiet",
		Short:         "Dog diet assistant: nutrition targets, daily intake and profiles",
		Long:          "dogdiet runs the conversational dog diet assistant over HTTP, Telegram or the terminal, and inspects stored dog profiles.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newTelegramCmd(),
		newChatCmd(),
		newPetsCmd(),
	)

	return rootCmd
}
