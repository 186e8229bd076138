package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/chat"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/rendering"
)

var (
	chatOut    string
	chatConfig string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the resume interview in the terminal",
	Long:  `Answer the assistant's questions on stdin; once the interview is complete the resume is written out as resume.txt and resume.pdf.`,
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatOut, "out", ".", "Directory to write resume.txt and resume.pdf into")
	chatCmd.Flags().StringVar(&chatConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(chatCmd)
}

// readLine reads the next input line. Closed input is reported as an
// error so an EOF mid-interview never exits with a success status.
func readLine(scanner *bufio.Scanner) (string, error) {
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("input closed before the interview finished")
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(chatConfig)
	if err != nil {
		return err
	}

	ctx := context.Background()
	gateway, err := llm.NewGeminiGateway(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("failed to create completion gateway: %w", err)
	}
	defer gateway.Close()

	controller := chat.NewController(gateway, prompts.MustGet("system"), prompts.MustGet("final_resume"), cfg.ReadyMarkers)

	reply, err := controller.Advance(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Assistant: %s\n", reply)

	scanner := bufio.NewScanner(os.Stdin)
	for controller.State() == chat.StateCollecting {
		fmt.Print("You: ")
		input, err := readLine(scanner)
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}

		reply, err := controller.Submit(ctx, input)
		for err != nil {
			var gw *llm.GatewayError
			if !errors.As(err, &gw) {
				return err
			}
			// The answer is already recorded; only the reply is retried.
			fmt.Fprintf(os.Stderr, "The assistant is unavailable (%s). Press enter to retry.\n", gw.Kind)
			if _, err := readLine(scanner); err != nil {
				return err
			}
			reply, err = controller.Advance(ctx)
		}
		fmt.Printf("Assistant: %s\n", reply)
	}

	fmt.Println("Generating your resume...")
	text, err := controller.FinalDocument(ctx)
	if err != nil {
		return err
	}

	txtPath := filepath.Join(chatOut, "resume.txt")
	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", txtPath, err)
	}
	fmt.Printf("Wrote %s\n", txtPath)

	pdf, err := rendering.Paginate(ctx, rendering.Render(text))
	if err != nil {
		// The text artifact stands on its own when pagination fails.
		fmt.Fprintf(os.Stderr, "PDF generation failed: %v\n", err)
		return nil
	}
	pdfPath := filepath.Join(chatOut, "resume.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pdfPath, err)
	}
	fmt.Printf("Wrote %s\n", pdfPath)
	return nil
}
