package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	objectiveContent string
	objectiveRename  string
)

var objectivesCmd = &cobra.Command{
	Use:         "objectives",
	Aliases:     []string{"goals"},
	Short:       "Manage daily objectives",
	Annotations: route(routeGoals),
}

var objectivesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List daily objectives",
	Args:  cobra.NoArgs,
	RunE:  runObjectivesList,
}

var objectivesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a daily objective",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectivesAdd,
}

var objectivesEditCmd = &cobra.Command{
	Use:   "edit <objective>",
	Short: "Change an objective's name or content",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectivesEdit,
}

var objectivesRmCmd = &cobra.Command{
	Use:     "rm <objective>",
	Aliases: []string{"delete"},
	Short:   "Delete an objective",
	Args:    cobra.ExactArgs(1),
	RunE:    runObjectivesRm,
}

var objectivesDoneCmd = &cobra.Command{
	Use:   "done <objective>",
	Short: "Mark an objective as done",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return markObjective(cmd, args[0], true) },
}

var objectivesUndoneCmd = &cobra.Command{
	Use:   "undone <objective>",
	Short: "Reopen an objective",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return markObjective(cmd, args[0], false) },
}

func init() {
	objectivesAddCmd.Flags().StringVar(&objectiveContent, "content", "", "Objective details")
	objectivesEditCmd.Flags().StringVar(&objectiveRename, "name", "", "New name")
	objectivesEditCmd.Flags().StringVar(&objectiveContent, "content", "", "New details")

	objectivesCmd.AddCommand(objectivesListCmd)
	objectivesCmd.AddCommand(objectivesAddCmd)
	objectivesCmd.AddCommand(objectivesEditCmd)
	objectivesCmd.AddCommand(objectivesRmCmd)
	objectivesCmd.AddCommand(objectivesDoneCmd)
	objectivesCmd.AddCommand(objectivesUndoneCmd)
}

func runObjectivesList(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.store.FetchObjectives(cmd.Context()); err != nil {
		return err
	}

	objectives := a.store.Objectives()
	if len(objectives) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No objectives yet.")
		return nil
	}
	rows := make([][]string, 0, len(objectives))
	for _, o := range objectives {
		rows = append(rows, []string{strconv.FormatInt(o.ID, 10), check(bool(o.Done)), o.Name, o.Content})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "DONE", "NAME", "CONTENT"}, rows)
	return nil
}

func runObjectivesAdd(cmd *cobra.Command, args []string) error {
	o, err := current.store.CreateObjective(cmd.Context(), args[0], objectiveContent)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added objective %d %q\n", o.ID, o.Name)
	return nil
}

func runObjectivesEdit(cmd *cobra.Command, args []string) error {
	nameSet := cmd.Flags().Changed("name")
	contentSet := cmd.Flags().Changed("content")
	if !nameSet && !contentSet {
		return fmt.Errorf("nothing to update: pass --name or --content")
	}

	a := current
	if err := a.store.FetchObjectives(cmd.Context()); err != nil {
		return err
	}
	o, err := findObjective(a.store.Objectives(), args[0])
	if err != nil {
		return err
	}
	name, content := o.Name, o.Content
	if nameSet {
		name = objectiveRename
	}
	if contentSet {
		content = objectiveContent
	}
	if err := a.store.UpdateObjective(cmd.Context(), o, name, content); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated objective %d %q\n", o.ID, name)
	return nil
}

func runObjectivesRm(cmd *cobra.Command, args []string) error {
	a := current
	if err := a.store.FetchObjectives(cmd.Context()); err != nil {
		return err
	}
	o, err := findObjective(a.store.Objectives(), args[0])
	if err != nil {
		return err
	}
	if err := a.store.DeleteObjective(cmd.Context(), o.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted objective %d %q\n", o.ID, o.Name)
	return nil
}

func markObjective(cmd *cobra.Command, ref string, done bool) error {
	a := current
	if err := a.store.FetchObjectives(cmd.Context()); err != nil {
		return err
	}
	o, err := findObjective(a.store.Objectives(), ref)
	if err != nil {
		return err
	}
	if err := a.store.SetObjectiveDone(cmd.Context(), o, done); err != nil {
		return err
	}
	state := "reopened"
	if done {
		state = "done"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Objective %q %s.\n", o.Name, state)
	return nil
}
