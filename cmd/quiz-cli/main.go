package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"quiz-service/internal/cli"
	"quiz-service/internal/client"
)

func main() {
	defaultServer := os.Getenv("QUIZ_SERVER")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}

	server := flag.String("server", defaultServer, "quiz-service base URL")
	user := flag.String("user", os.Getenv("QUIZ_USER"), "user id used for play and result")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Run(ctx, os.Stdin, os.Stdout, cli.Config{
		ServerURL:   *server,
		UserID:      *user,
		HTTPTimeout: *timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
