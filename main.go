package main

import (
	"os"

	"github.com/khalil0525/sample-app-aoai-chatGPT/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
