package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/whispir/whispir"
)

type sendOptions struct {
	workspace string
	to        string
	subject   string
	body      string
	label     string
}

func newSendCommand(flags *rootFlags) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an SMS message",
		Long: `Send a message to a recipient, optionally inside a workspace.

The command prints the HTTP status returned by the API. 202 means the
message was accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *App) error {
				status, err := app.Client().SendMessage(cmd.Context(), whispir.Message{
					WorkspaceID: opts.workspace,
					To:          opts.to,
					Subject:     opts.subject,
					Body:        opts.body,
					Label:       opts.label,
				})
				if err != nil {
					return err
				}
				if status == 0 {
					return fmt.Errorf("message failed: connection error")
				}
				cmd.Printf("status: %d\n", status)
				if status/100 != 2 {
					return fmt.Errorf("message rejected with status %d", status)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.workspace, "workspace", "w", "", "workspace id (default: company workspace)")
	f.StringVarP(&opts.to, "to", "t", "", "recipient phone number or contact")
	f.StringVarP(&opts.subject, "subject", "s", "", "message subject")
	f.StringVarP(&opts.body, "body", "b", "", "message body")
	f.StringVar(&opts.label, "label", "", "message label")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
