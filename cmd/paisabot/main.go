package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"paisabot/internal/config"
	"paisabot/internal/db"
	"paisabot/internal/server"
	"paisabot/internal/svc"
	"paisabot/internal/types"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paisabot",
		Short: "WhatsApp expense-tracking bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.AddCommand(serveCmd(), linkCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	c := config.Load()
	svcCtx, err := svc.NewServiceContext(c)
	if err != nil {
		return err
	}
	defer svcCtx.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return server.Run(ctx, svcCtx)
}

// linkCmd seeds an account row directly. The production linking flow lives
// in a separate service; this exists for local setup and testing.
func linkCmd() *cobra.Command {
	var phone, apiKey string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a phone number to a new or existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := types.NormalizePhone(phone)
			if normalized == "" {
				return fmt.Errorf("phone %q contains no digits", phone)
			}

			c := config.Load()
			store, err := db.NewSQLite(c.SQLitePath)
			if err != nil {
				return err
			}
			defer store.Close()

			account, err := store.UpsertAccount(cmd.Context(), normalized, apiKey)
			if err != nil {
				return err
			}
			fmt.Printf("Linked %s to account %s\n", normalized, account.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number to link (any format, digits are kept)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Optional per-account OpenAI API key")
	cmd.MarkFlagRequired("phone")
	return cmd
}
