package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-client/internal/model"
)

var (
	projectsAll        bool
	projectDescription string
	projectRename      string
)

var projectsCmd = &cobra.Command{
	Use:         "projects",
	Short:       "Manage projects",
	Annotations: route(routeProjects),
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <project>",
	Short: "Rename a project or change its description",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsUpdate,
}

var projectsEnableCmd = &cobra.Command{
	Use:   "enable <project>",
	Short: "Enable a project for tracking",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleProject(cmd, args[0], true) },
}

var projectsDisableCmd = &cobra.Command{
	Use:   "disable <project>",
	Short: "Disable a project",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleProject(cmd, args[0], false) },
}

func init() {
	projectsListCmd.Flags().BoolVar(&projectsAll, "all", false, "Include disabled projects")
	projectsCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	projectsUpdateCmd.Flags().StringVar(&projectRename, "name", "", "New name")
	projectsUpdateCmd.Flags().StringVar(&projectDescription, "description", "", "New description")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsUpdateCmd)
	projectsCmd.AddCommand(projectsEnableCmd)
	projectsCmd.AddCommand(projectsDisableCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	a := current
	var err error
	if projectsAll {
		err = a.store.FetchAllProjects(cmd.Context())
	} else {
		err = a.store.FetchEnabledProjects(cmd.Context())
	}
	if err != nil {
		return err
	}

	projects := a.store.Projects()
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
		return nil
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{strconv.FormatInt(p.ID, 10), p.Name, check(bool(p.Enabled)), p.Description})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "ENABLED", "DESCRIPTION"}, rows)
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	p, err := current.store.CreateProject(cmd.Context(), args[0], projectDescription)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %d %q\n", p.ID, p.Name)
	return nil
}

// lookupProject finds a project among all projects, enabled or not.
func lookupProject(cmd *cobra.Command, ref string) (model.Project, error) {
	if err := current.store.FetchAllProjects(cmd.Context()); err != nil {
		return model.Project{}, err
	}
	return findProject(current.store.Projects(), ref)
}

func runProjectsUpdate(cmd *cobra.Command, args []string) error {
	nameSet := cmd.Flags().Changed("name")
	descSet := cmd.Flags().Changed("description")
	if !nameSet && !descSet {
		return fmt.Errorf("nothing to update: pass --name or --description")
	}

	p, err := lookupProject(cmd, args[0])
	if err != nil {
		return err
	}
	name, description := p.Name, p.Description
	if nameSet {
		name = projectRename
	}
	if descSet {
		description = projectDescription
	}
	if err := current.store.UpdateProjectDetails(cmd.Context(), p, name, description); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d %q\n", p.ID, name)
	return nil
}

func toggleProject(cmd *cobra.Command, ref string, enable bool) error {
	p, err := lookupProject(cmd, ref)
	if err != nil {
		return err
	}
	if bool(p.Enabled) == enable {
		fmt.Fprintf(cmd.OutOrStdout(), "Project %q is already %s.\n", p.Name, enabledWord(enable))
		return nil
	}
	if err := current.store.ToggleProject(cmd.Context(), p, enable); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Project %q %s.\n", p.Name, enabledWord(enable))
	return nil
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
