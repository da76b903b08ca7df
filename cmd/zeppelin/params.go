package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lostinentropy/zeppelin-core"
)

type paramsCmd struct{}

func (cmd *paramsCmd) Run(_ *kong.Context) error {
	doc, err := zeppelin.DefaultSettings().MarshalDocument()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(doc))

	return err
}
