package main

import (
	"context"

	"hot100-backend/cmd/hot100-cli/commands"
	"hot100-backend/lib/serviceutil"
	"hot100-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	t, err := telemetry.SetupFromEnv(ctx, "hot100-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
