package main

import (
	"context"
	"fmt"
	"time"

	"github.com/maruel/subcommands"

	"github.com/Beyney/julea/internal/backgroundop"
	"github.com/Beyney/julea/internal/itemstatus"
	"github.com/Beyney/julea/internal/jtrace"
	"github.com/Beyney/julea/internal/storageclient"
)

var cmdArchive = &subcommands.Command{
	UsageLine: "archive <options> <key>...",
	ShortDesc: "pushes each key to storage through the background-operation pool",
	LongDesc:  "Demonstrates backgroundop, storageclient, and itemstatus together under one trace.",
	CommandRun: func() subcommands.CommandRun {
		c := &archiveRun{}
		c.storageFlags.Register(&c.Flags, lookupOSEnv)
		return c
	},
}

type archiveRun struct {
	subcommands.CommandRunBase
	storageFlags storageclient.Flags
}

func (c *archiveRun) Run(a subcommands.Application, args []string) int {
	if err := c.storageFlags.Parse(); err != nil {
		return fatalf(a, "%s", err)
	}
	if len(args) == 0 {
		return fatalf(a, "expected at least one key to archive")
	}

	span := jtrace.Enter("julea-trace.archive", "%d keys", len(args))
	defer jtrace.Leave(span)

	start := time.Now()
	client := storageclient.New(c.storageFlags)
	status := itemstatus.New()

	pool := backgroundop.New(context.Background(), 4)
	for _, key := range args {
		key := key
		pool.Submit("archive:"+key, func(ctx context.Context) error {
			if _, err := client.Get(key); err != nil {
				client.Put(key, []byte(key))
				status.RecordMiss(int64(len(key)))
			} else {
				status.RecordHit(int64(len(key)))
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return fatalf(a, "%s", err)
	}

	fmt.Fprintf(a.GetOut(), "hits=%d misses=%d duration=%s\n",
		status.TotalHits(), status.TotalMisses(), time.Since(start).Round(time.Millisecond))
	return 0
}
