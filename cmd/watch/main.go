// Command watch follows the votes of one event: it keeps the push stream
// connected, reconciles against the API and logs every tally change.
//
// Exit codes: 0 = clean shutdown on SIGINT/SIGTERM, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/VW-ai/where2meet-client/internal/app"
)

func main() {
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(app.BuildVersion())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("watch: %v", err)
	}
}
