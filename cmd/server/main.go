package main

import "wm-ferretero/go_backend/internal/app"

func main() {
	app.Run()
}
