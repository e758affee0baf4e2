package main

import (
	"os"

	"chat-assistant/backend/internal/app"
)

// @title           Chat Assistant API
// @version         1.0
// @description     Chat history persistence and streaming relay for the chat assistant front-end.
// @BasePath        /api
// @accept          json
// @produce         json
func main() {
	os.Exit(app.Run())
}
