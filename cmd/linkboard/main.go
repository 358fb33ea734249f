package main

import (
	"log"

	"github.com/MrSnakeDoc/linkboard/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkboard failed to start: %v", err)
	}
}
