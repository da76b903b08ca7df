package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lostinentropy/zeppelin-core"
)

type encryptCmd struct {
	Input            string `arg:"" type:"existingfile" help:"The file to encrypt."`
	Output           string `arg:"" type:"path" help:"The .zep container to write."`
	HardenPassphrase bool   `help:"Stretch the typed passphrase with Argon2id before use." name:"harden-passphrase"`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	passphrase, err := askPassphrase("Enter passphrase: ")
	if err != nil {
		return err
	}

	password := passphrase
	if cmd.HardenPassphrase {
		password = hardenPassphrase(passphrase)
	}

	in, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	prog := &barProgress{label: "encrypting"}

	if err := zeppelin.CreateContainer(context.Background(), cmd.Output, password, in, zeppelin.DefaultSettings(), prog); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr)

	return nil
}
