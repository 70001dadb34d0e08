package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/mailsplit/compound"
)

var listStreams bool

var dumpCmd = &cobra.Command{
	Use:   "dump file.msg",
	Short: "Print an Outlook message as text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&listStreams, "streams", false, "list the string property streams instead")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	msg, err := compound.Open(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !listStreams {
		return msg.Dump(w)
	}

	for _, name := range msg.Streams() {
		label, ok := compound.PropertyName(name)
		if !ok {
			label = "unknown"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", name, label); err != nil {
			return err
		}
	}
	return nil
}
