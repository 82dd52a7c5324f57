package main

import (
	"context"
	"os/signal"
	"syscall"

	"vehicledebts/cmd"
	"vehicledebts/infra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	loadingEnv := infra.NewConfig()
	container := infra.NewContainerDI(loadingEnv)
	defer container.Close()

	cmd.StartAPI(ctx, container)
}
