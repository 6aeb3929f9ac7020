package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivo-gavran/wikiart-chatbot/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session grounded in the artwork corpus.

Type a question and press enter; "exit" or "quit" ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println("WikiArt chatbot. Ask about artworks; type 'exit' to leave.")

		var history []chat.Turn
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(colorize(colorBold, "you> "))
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}

			message := strings.TrimSpace(scanner.Text())
			if message == "" {
				continue
			}
			if message == "exit" || message == "quit" {
				return nil
			}

			_, history = a.manager.Process(ctx, message, history)
			if len(history) > 0 {
				fmt.Printf("%s %s\n\n", colorize(colorCyan, "bot>"), history[len(history)-1].Content)
			}

			if ctx.Err() != nil {
				return nil
			}
		}
	},
}
