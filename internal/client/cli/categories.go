package cli

import (
	"context"
	"strconv"
)

func (a *App) listCategories(ctx context.Context, _ []string) error {
	list, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No categories\n")
		return nil
	}
	for _, c := range list {
		a.printf("%d\t%s\t%s\n", c.ID, c.Name, c.Color)
	}
	return nil
}

func (a *App) addCategory(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	color := ""
	if len(args) == 2 {
		color = args[1]
	}

	c, err := a.api.CreateCategory(ctx, args[0], color)
	if err != nil {
		return err
	}
	a.printf("Created category %d (%s)\n", c.ID, c.Color)
	return nil
}

func (a *App) removeCategory(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	if err := a.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	a.printf("Category %d deleted\n", id)
	return nil
}

func singleID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}
