package main

import (
	"os"

	"github.com/josephlewis42/resultsh/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
