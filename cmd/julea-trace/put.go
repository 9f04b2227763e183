package main

import (
	"errors"
	"fmt"

	"github.com/maruel/subcommands"

	"github.com/Beyney/julea/internal/jtrace"
	"github.com/Beyney/julea/internal/storageclient"
)

var cmdPut = &subcommands.Command{
	UsageLine: "put <options> <key> <value>",
	ShortDesc: "stores a value under a key in the traced storage client",
	LongDesc:  "Every Put is bracketed in a FileBegin/FileEnd pair visible under JULEA_TRACE=echo.",
	CommandRun: func() subcommands.CommandRun {
		c := &putRun{}
		c.storageFlags.Register(&c.Flags, lookupOSEnv)
		return c
	},
}

type putRun struct {
	subcommands.CommandRunBase
	storageFlags storageclient.Flags
}

func (c *putRun) Run(a subcommands.Application, args []string) int {
	if err := c.storageFlags.Parse(); err != nil {
		return fatalf(a, "%s", err)
	}
	if len(args) != 2 {
		return fatalf(a, "%s", errors.New("expected exactly two positional arguments: <key> <value>"))
	}

	span := jtrace.Enter("julea-trace.put", "")
	defer jtrace.Leave(span)

	client := storageclient.New(c.storageFlags)
	client.Put(args[0], []byte(args[1]))
	fmt.Fprintf(a.GetOut(), "stored %q\n", args[0])
	return 0
}
