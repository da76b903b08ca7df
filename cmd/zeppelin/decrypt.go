package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lostinentropy/zeppelin-core"
)

type decryptCmd struct {
	Input            string `arg:"" type:"existingfile" help:"The .zep container to decrypt."`
	Output           string `arg:"" type:"path" help:"The file to write the recovered plaintext to."`
	HardenPassphrase bool   `help:"Stretch the typed passphrase with Argon2id before use." name:"harden-passphrase"`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	passphrase, err := askPassphrase("Enter passphrase: ")
	if err != nil {
		return err
	}

	password := passphrase
	if cmd.HardenPassphrase {
		password = hardenPassphrase(passphrase)
	}

	out, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	prog := &barProgress{label: "decrypting"}

	if err := zeppelin.OpenContainer(context.Background(), cmd.Input, password, out, prog); err != nil {
		// The output may already hold recovered-but-unverified plaintext;
		// remove it rather than leave a file a caller might mistake for
		// trustworthy output.
		_ = out.Close()
		_ = os.Remove(cmd.Output)

		return err
	}

	fmt.Fprintln(os.Stderr)

	return nil
}
