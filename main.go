package main

import "rentflow/internal/app"

func main() {
	app.Run()
}
