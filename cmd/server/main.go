package main

import (
	"os"

	"rukmini-chat/backend/internal/app"
)

// @title        Rukmini Chat API
// @version      1.0
// @description  Reply endpoint and conversation state for the Rukmini chat widget.
// @BasePath     /
func main() {
	os.Exit(app.Run())
}
