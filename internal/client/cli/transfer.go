package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) exportData(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	doc, err := a.api.Export(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], doc, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}

	a.printf("Exported to %s\n", args[0])
	return nil
}

func (a *App) importData(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	doc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	res, err := a.api.Import(ctx, doc)
	if err != nil {
		return err
	}
	a.printf("%s: %d categories, %d tasks\n", res.Message, res.Categories, res.Tasks)
	return nil
}

// snapshot stores an export in object storage and, when a file is given,
// downloads it back through the presigned link.
func (a *App) snapshot(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	snap, err := a.api.CreateSnapshot(ctx)
	if err != nil {
		return err
	}
	a.printf("Snapshot %s\n%s\n", snap.Key, snap.URL)

	if len(args) == 0 {
		return nil
	}

	doc, err := a.api.DownloadSnapshot(ctx, snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], doc, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	a.printf("Saved to %s\n", args[0])
	return nil
}
