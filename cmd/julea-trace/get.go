package main

import (
	"errors"
	"fmt"

	"github.com/maruel/subcommands"

	"github.com/Beyney/julea/internal/jtrace"
	"github.com/Beyney/julea/internal/storageclient"
)

var cmdGet = &subcommands.Command{
	UsageLine: "get <options> <key>",
	ShortDesc: "looks up a key in a fresh in-memory storage client (values from an earlier put run are not kept)",
	LongDesc:  "Every Get is bracketed in a FileBegin/FileEnd pair visible under JULEA_TRACE=echo.",
	CommandRun: func() subcommands.CommandRun {
		c := &getRun{}
		c.storageFlags.Register(&c.Flags, lookupOSEnv)
		return c
	},
}

type getRun struct {
	subcommands.CommandRunBase
	storageFlags storageclient.Flags
}

func (c *getRun) Run(a subcommands.Application, args []string) int {
	if err := c.storageFlags.Parse(); err != nil {
		return fatalf(a, "%s", err)
	}
	if len(args) != 1 {
		return fatalf(a, "%s", errors.New("expected exactly one positional argument: <key>"))
	}

	span := jtrace.Enter("julea-trace.get", "")
	defer jtrace.Leave(span)

	client := storageclient.New(c.storageFlags)
	value, err := client.Get(args[0])
	if err != nil {
		return fatalf(a, "%s", err)
	}
	fmt.Fprintf(a.GetOut(), "%s\n", value)
	return 0
}
