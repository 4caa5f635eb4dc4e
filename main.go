package main

import (
	"csms_backend/config"
)

func main() {
	config.InitApp()

	app := config.SetupApp()

	config.StartServer(app)
}
