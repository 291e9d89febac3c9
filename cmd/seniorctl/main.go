package main

import (
	"os"

	"github.com/justsurfingit/senior-job-match/internal/cli"
)

func main() {
	env := cli.NewEnv()
	err := cli.RootCmd(env).Execute()
	env.Close()
	if err != nil {
		os.Exit(1)
	}
}
