// Command chat is an interactive terminal session with the financial
// chatbot, useful for trying classifier changes without the HTTP server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"finpulse/chatbot"
	"finpulse/config"
	"finpulse/observability"
	"finpulse/services"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(false)

	var recommendations services.RecommendationSource
	if cfg.Chatbot.RecommendationSource == "remote" {
		recommendations = services.NewRemoteRecommendationSource(cfg.Chatbot.RecommendationURL)
	} else {
		recommendations = services.NewStaticRecommendationSource()
	}
	bot := chatbot.NewService(cfg.Chatbot, recommendations)

	fmt.Println("Financial assistant ready. Ctrl-D to quit.")
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()
		if input == "" {
			continue
		}
		fmt.Println(bot.ProcessUserInput(ctx, input))
		fmt.Println()
	}
}
