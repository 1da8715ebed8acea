package cli

import (
	"context"
	"fmt"
	"strings"
)

// Groups prints the available muscle groups.
func (a *App) Groups(ctx context.Context) error {
	groups, err := a.training.Groups(ctx)
	if err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	if len(groups) == 0 {
		printlnFn("No groups available.")
		return nil
	}

	printlnFn("Groups: " + strings.Join(groups, ", "))
	return nil
}

// Exercises prints the exercises for a muscle group.
func (a *App) Exercises(ctx context.Context, group string) error {
	exercises, err := a.training.ExercisesByGroup(ctx, group)
	if err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	if len(exercises) == 0 {
		printlnFn("No exercises in group " + group + ".")
		return nil
	}

	for _, ex := range exercises {
		printlnFn(fmt.Sprintf("%4d  %-30s %d x %d", ex.ID, ex.Name, ex.Series, ex.Repetitions))
	}
	return nil
}

// Exercise prints the detail view for a single exercise.
func (a *App) Exercise(ctx context.Context, id int) error {
	ex, err := a.training.Exercise(ctx, id)
	if err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	printlnFn("Name:        " + ex.Name)
	printlnFn("Group:       " + ex.Group)
	printlnFn(fmt.Sprintf("Sets:        %d x %d", ex.Series, ex.Repetitions))
	if ex.Demo != "" {
		printlnFn("Demo:        " + ex.Demo)
	}
	return nil
}

// History prints the training history grouped by day, newest first.
func (a *App) History(ctx context.Context) error {
	days, err := a.training.History(ctx)
	if err != nil {
		printlnFn(friendlyError(err))
		return err
	}

	if len(days) == 0 {
		printlnFn("No workouts registered yet.")
		return nil
	}

	for _, day := range days {
		printlnFn(day.Title)
		for _, entry := range day.Data {
			printlnFn(fmt.Sprintf("  %s  %s (%s)", entry.Hour, entry.Name, entry.Group))
		}
	}
	return nil
}
