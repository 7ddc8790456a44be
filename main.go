package main

import "fillratedash/internal/app"

func main() {
	app.Run()
}
