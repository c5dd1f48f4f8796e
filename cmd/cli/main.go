package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/iho/mitiledger/internal/adapter/http/dto"
)

type options struct {
	baseURL        string
	timeout        time.Duration
	senderID       string
	conversationID string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "mitiledger-cli",
		Short:         "MitiLedger CLI tool",
		Long:          `A command line interface for talking to the MitiLedger bot through its webhook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the MitiLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.senderID, "sender", os.Getenv("PARTICIPANT_A"), "Sender identity of the messages")
	rootCmd.PersistentFlags().StringVar(&opts.conversationID, "conversation", os.Getenv("TARGET_CONVERSATION_ID"), "Conversation the messages are posted to")

	rootCmd.AddCommand(sendCmd(opts), chatCmd(opts), balanceCmd(opts))

	return rootCmd
}

func sendCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "send TEXT...",
		Short: "Send one chat message and print the replies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			replies, err := opts.client().send(opts.senderID, opts.conversationID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printReplies(cmd.OutOrStdout(), replies)
			return nil
		},
	}
}

func chatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat; '/as ID' switches sender, '/quit' exits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := opts.client()
			sender := opts.senderID
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())

			for {
				fmt.Fprintf(out, "%s> ", sender)
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
					continue
				case line == "/quit":
					return nil
				case strings.HasPrefix(line, "/as "):
					sender = strings.TrimSpace(strings.TrimPrefix(line, "/as "))
					continue
				}

				replies, err := c.send(sender, opts.conversationID, line)
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				printReplies(out, replies)
			}
		},
	}
}

func balanceCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			balance, err := opts.client().balance()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), balance)
			}

			fmt.Fprintln(cmd.OutOrStdout(), balance.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")

	return cmd
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func (o *options) client() *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(o.baseURL, "/"),
		http:    &http.Client{Timeout: o.timeout},
	}
}

func (c *apiClient) send(senderID, conversationID, text string) ([]string, error) {
	body, err := json.Marshal(dto.MessageRequest{
		MessageID:      ulid.Make().String(),
		SenderID:       senderID,
		ConversationID: conversationID,
		Text:           text,
		IsGroup:        true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.baseURL+"/api/v1/messages", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiError(resp)
	}

	var out dto.MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return out.Replies, nil
}

func (c *apiClient) balance() (*dto.BalanceResponse, error) {
	resp, err := c.http.Get(c.baseURL + "/api/v1/balance")
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var out dto.BalanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &out, nil
}

func apiError(resp *http.Response) error {
	var e dto.ErrorResponse
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}
	if e.Message != "" {
		return fmt.Errorf("%s: %s (status %d)", e.Error, e.Message, resp.StatusCode)
	}
	return fmt.Errorf("%s (status %d)", e.Error, resp.StatusCode)
}

func printReplies(w io.Writer, replies []string) {
	for _, r := range replies {
		fmt.Fprintln(w, r)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
