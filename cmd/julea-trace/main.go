// Command julea-trace is a small demonstration CLI wiring together the
// tracing core and its external collaborators: it drives a storageclient
// namespace and a backgroundop pool through a few operations, all inside
// an Init/Fini bracket, so JULEA_TRACE=echo,summary shows real output.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/maruel/subcommands"
	"go.uber.org/zap"

	"github.com/Beyney/julea/internal/jconfig"
	"github.com/Beyney/julea/internal/jtrace"
	"github.com/Beyney/julea/internal/julog"
)

func lookupOSEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

var application = &subcommands.DefaultApplication{
	Name:  "julea-trace",
	Title: "drives traced storage and background operations for JULEA's tracing core",
	Commands: []*subcommands.Command{
		cmdPut,
		cmdGet,
		cmdArchive,
		subcommands.CmdHelp,
	},
}

func main() {
	zl, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "julea-trace: zap.NewProduction: %s; falling back to a no-op logger\n", err)
		zl = zap.NewNop()
	}
	logger := julog.NewZap(zl)
	ctx := julog.Set(context.Background(), logger)

	jtrace.Init("julea-trace", jtrace.WithLogger(logger))
	jconfig.Init(ctx)

	// os.Exit does not run deferred functions, so Fini must be called
	// explicitly around subcommands.Run rather than deferred past it.
	code := subcommands.Run(application, os.Args[1:])
	jconfig.Fini()
	jtrace.Fini()
	_ = zl.Sync()
	os.Exit(code)
}

// fatalf prints an error through the application's standard channel and
// returns the conventional subcommands failure code.
func fatalf(a subcommands.Application, format string, args ...interface{}) int {
	fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), fmt.Sprintf(format, args...))
	return 1
}
