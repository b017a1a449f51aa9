package main

import (
	"github.com/esiddiqui/goidc-session/cmd"
)

func main() {
	cmd.Exec()
}
