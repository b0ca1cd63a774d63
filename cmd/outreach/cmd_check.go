package main

import (
	"fmt"

	"github.com/spf13/cobra"

	emailsend "outreach-campaigns/internal/workers/communication/email-send"
)

var checkMailCmd = &cobra.Command{
	Use:   "check-mail",
	Short: "Check that the configured SMTP relay accepts connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, err := openSender(cmd.Context())
		if err != nil {
			return err
		}
		smtpSender, ok := sender.(*emailsend.SMTPSender)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Provider %q has no connection check\n", cfg.Mail.Provider)
			return nil
		}
		if err := smtpSender.TestConnection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s:%d\n", cfg.Mail.SMTP.Host, cfg.Mail.SMTP.Port)
		return nil
	},
}
