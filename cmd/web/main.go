package main

import "bloodbank_backend/internal/app"

func main() {
	app.Run()
}
