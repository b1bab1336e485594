package main

import (
	"context"
	"log"
	"os"

	"github.com/jotpad/jot/pkg/jot"
)

func main() {
	if err := jot.Main(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
