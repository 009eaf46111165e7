package main

import (
	"mutants.dev/backend/cmd/app"
)

func main() {
	app.Run()
}
