package main

import (
	"os"

	"github.com/enterprise-sso/sso-portal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
