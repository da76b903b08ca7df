package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"
)

type cli struct {
	Encrypt encryptCmd `cmd:"" help:"Encrypt a file into a .zep container."`
	Decrypt decryptCmd `cmd:"" help:"Decrypt a .zep container."`
	Params  paramsCmd  `cmd:"" help:"Print the default cost parameters as a params document."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func askPassphrase(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}
