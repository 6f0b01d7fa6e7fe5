// Command stackdemo opens a short stack of SDL windows through a windowstack
// Controller and tears it down again, either on a timer or with the back button.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/veandco/go-sdl2/sdl"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	sdl.Main(func() {
		err = newRootCommand().ExecuteContext(ctx)
	})

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
