package main

import (
	"os"

	"github.com/h-mdm/hmdm-server-sub000/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
