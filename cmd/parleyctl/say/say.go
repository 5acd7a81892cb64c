package saycmder

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parleylabs/parley/server"
)

const sayLongDesc string = `Send one typed utterance to a running parley server.

The reply audio is saved to a file and the recognized transcript and
reply text (decoded from the response headers) are printed.

Examples:
  parleyctl say "what time is it in Lisbon?"
  parleyctl say --server http://192.168.1.42:8080 --out reply.mp3 "hello"`

const sayShortDesc string = "Send text to a parley server and save the spoken reply"

type sayCommander struct {
	serverURL string
	outPath   string
}

func NewSayCmd() *cobra.Command {
	cmder := &sayCommander{}

	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: sayShortDesc,
		Long:  sayLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.serverURL, "server", "s", "http://localhost:8080", "Parley server URL")
	cmd.Flags().StringVarP(&cmder.outPath, "out", "o", "reply.mp3", "Where to save the reply audio")

	return cmd
}

func (c *sayCommander) run(cmd *cobra.Command, text string) error {
	serverURL := strings.TrimRight(c.serverURL, "/")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("input", text); err != nil {
		return fmt.Errorf("could not build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("could not build form: %w", err)
	}

	resp, err := http.Post(serverURL+"/api/converse", writer.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	transcript, err := server.DecodeHeaderValue(resp.Header.Get(server.HeaderTranscript))
	if err != nil {
		return fmt.Errorf("could not decode transcript header: %w", err)
	}
	reply, err := server.DecodeHeaderValue(resp.Header.Get(server.HeaderResponse))
	if err != nil {
		return fmt.Errorf("could not decode reply header: %w", err)
	}

	if err := os.WriteFile(c.outPath, body, 0o644); err != nil {
		return fmt.Errorf("could not save audio: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "you:    %s\n", transcript)
	fmt.Fprintf(cmd.OutOrStdout(), "parley: %s\n", reply)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes of audio to %s\n", len(body), c.outPath)

	return nil
}
