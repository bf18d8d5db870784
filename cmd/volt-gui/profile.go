package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"voltgui/internal/catalog"
	"voltgui/internal/options"
	"voltgui/internal/profile"
)

var (
	saveFrom        string
	saveAssignments []string
	deleteYes       bool
	exportOutput    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage settings profiles",
	Long:  `Profiles are named sets of CPU, GPU, kernel and disk selections stored as INI files.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a profile",
	Long:  `Print the stored form of a profile. Without a name the active profile is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileShow,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Create or update a profile",
	Long: `Save a profile. The starting point is --from, or the existing profile of the
same name. Each --set assigns one value:

  cpu.<key>=<value>        kernel.<key>=<value>      gpu.<key>=<value>
  disk.<device>=<value>    launch_options=<text>

Assigning "unset" or an empty value clears the key.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSave,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

var profileDiffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two profiles",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileDiff,
}

var profileExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write a profile to stdout or a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileExport,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <name> <file|->",
	Short: "Import a profile file under a new name",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileImport,
}

var profileActivateCmd = &cobra.Command{
	Use:   "activate [name]",
	Short: "Mark a profile as active",
	Long:  `Remember a profile as the active one. Without a name a picker is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileActivate,
}

func init() {
	profileSaveCmd.Flags().StringVar(&saveFrom, "from", "", "start from this profile")
	profileSaveCmd.Flags().StringArrayVar(&saveAssignments, "set", nil, "assign a value (repeatable)")
	profileDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
	profileExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileDiffCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileImportCmd)
	profileCmd.AddCommand(profileActivateCmd)

	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	active := a.activeProfile()
	green := color.New(color.FgHiGreen, color.Bold)

	for _, name := range a.profiles.List() {
		if name == active {
			green.Fprintf(out, "* %s\n", name)
			continue
		}
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name := a.activeProfile()
	if len(args) == 1 {
		name = args[0]
	}

	if name == profile.DefaultName && !a.profiles.Exists(name) {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s (every setting unset)\n", name)
		return nil
	}
	return a.profiles.Export(name, cmd.OutOrStdout())
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	if err := profile.ValidateName(name); err != nil {
		return err
	}

	base := saveFrom
	if base == "" && a.profiles.Exists(name) {
		base = name
	}

	sel := profile.NewSelections()
	if base != "" {
		loaded, err := a.selections(base)
		if err != nil {
			return err
		}
		sel = loaded.Clone()
	}

	for _, assignment := range saveAssignments {
		if err := assign(a.set, &sel, assignment); err != nil {
			return err
		}
	}

	if err := a.profiles.Save(name, sel); err != nil {
		return err
	}
	color.New(color.FgHiGreen).Fprintf(cmd.OutOrStdout(), "Saved profile %s to %s\n", name, a.profiles.Path(name))
	return nil
}

// assign applies one section.key=value assignment to sel.
func assign(set *catalog.Set, sel *profile.Selections, assignment string) error {
	lhs, value, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("invalid assignment %q: expected key=value", assignment)
	}
	lhs = strings.TrimSpace(lhs)
	value = strings.TrimSpace(value)
	unset := value == "" || strings.EqualFold(value, catalog.Unset)

	if lhs == "launch_options" {
		sel.LaunchOptions = value
		if unset {
			sel.LaunchOptions = ""
		}
		return nil
	}

	section, key, ok := strings.Cut(lhs, ".")
	if !ok || key == "" {
		return fmt.Errorf("invalid assignment %q: expected section.key=value", assignment)
	}

	var (
		target map[string]string
		known  bool
	)
	switch strings.ToLower(section) {
	case "cpu":
		_, known = set.CPU.Lookup(key)
		target = sel.CPU
	case "kernel":
		_, known = set.Kernel.Lookup(key)
		target = sel.Kernel
	case "gpu":
		_, known = set.LookupGPU(key)
		target = sel.GPU
	case "disk":
		device, setting, found := strings.Cut(key, ".")
		if !found {
			setting = catalog.KeyDiskScheduler
		}
		if unset {
			delete(sel.Disk[device], setting)
			if len(sel.Disk[device]) == 0 {
				delete(sel.Disk, device)
			}
			return nil
		}
		sel.SetDisk(device, setting, value)
		return nil
	default:
		return fmt.Errorf("unknown section %q", section)
	}

	if !known {
		return fmt.Errorf("unknown %s setting %q", section, key)
	}
	if unset {
		delete(target, key)
		return nil
	}
	target[key] = value
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	if name == profile.DefaultName {
		return fmt.Errorf("%w: %s cannot be deleted", profile.ErrReservedProfile, name)
	}
	if !a.profiles.Exists(name) {
		return fmt.Errorf("%w: %s", profile.ErrNotFound, name)
	}

	if !deleteYes {
		confirm := promptui.Prompt{Label: fmt.Sprintf("Delete profile %s", name), IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	wasActive := a.activeProfile() == name
	if _, err := a.profiles.Delete(name); err != nil {
		return err
	}

	if wasActive {
		if _, err := a.options.Update(func(o *options.Options) error {
			o.LastActiveProfile = profile.DefaultName
			return nil
		}); err != nil {
			return err
		}
	}

	color.New(color.FgHiGreen).Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", name)
	return nil
}

func runProfileDiff(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	lines, err := a.profiles.Diff(args[0], args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !profile.Changed(lines) {
		fmt.Fprintf(out, "%s and %s are identical\n", args[0], args[1])
		return nil
	}

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	for _, l := range lines {
		switch l.Op {
		case profile.DiffInsert:
			added.Fprintln(out, l.String())
		case profile.DiffDelete:
			removed.Fprintln(out, l.String())
		default:
			fmt.Fprintln(out, l.String())
		}
	}
	return nil
}

func runProfileExport(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return a.profiles.Export(args[0], cmd.OutOrStdout())
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOutput, err)
	}
	if err := a.profiles.Export(args[0], f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], exportOutput)
	return nil
}

func runProfileImport(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	name, source := args[0], args[1]
	if name == profile.DefaultName {
		return fmt.Errorf("%w: import under a new name", profile.ErrReservedProfile)
	}

	var r io.Reader = cmd.InOrStdin()
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("open %s: %w", source, err)
		}
		defer f.Close()
		r = f
	}

	sel, err := a.profiles.Import(name, r)
	if err != nil {
		return err
	}
	color.New(color.FgHiGreen).Fprintf(cmd.OutOrStdout(), "Imported %s (%d settings)\n", name, countSettings(sel))
	return nil
}

func countSettings(sel profile.Selections) int {
	n := len(sel.CPU) + len(sel.GPU) + len(sel.Kernel)
	for _, settings := range sel.Disk {
		n += len(settings)
	}
	if sel.LaunchOptions != "" {
		n++
	}
	return n
}

func runProfileActivate(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		names := a.profiles.List()
		prompt := promptui.Select{Label: "Profile", Items: names, Size: 10}
		i, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("select profile: %w", err)
		}
		name = names[i]
	}

	if name != profile.DefaultName && !a.profiles.Exists(name) {
		return fmt.Errorf("%w: %s", profile.ErrNotFound, name)
	}

	if _, err := a.options.Update(func(o *options.Options) error {
		o.LastActiveProfile = name
		return nil
	}); err != nil {
		return err
	}
	color.New(color.FgHiGreen).Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", name)
	return nil
}
