package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loctool.dev/pkg/loctool/internal/domain"
	m "loctool.dev/pkg/loctool/internal/model"
)

const replaceLongDescription = `Insert text into matching files with a literal find/replace.

Every file named by --file inside a directory whose path contains
--dir-contains is examined:
  - files without the --marker text are skipped
  - files that already contain the --guard text are left alone
  - files without the --target text are reported as not found
  - otherwise the first occurrence of --target becomes --replacement

Defaults add the jp and es entries after the de entry of the languages list
in app/**/settings/page.tsx. Running the command twice is a no-op the second
time.`

var replaceDirContains string
var replaceFiles []string
var replaceMarker string
var replaceGuard string
var replaceTarget string
var replaceReplacement string
var replaceDryRun bool

// replaceCmd represents the replace command.
var replaceCmd = newReplaceCmd()

func newReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace [root]",
		Short: "Apply an idempotent literal replacement to settings files",
		Long:  replaceLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := replacementJobFromConfig(args)
			if err != nil {
				return err
			}

			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Flags().GetBool(dryRunFlagName)

			return workflow.Replace(cmd.Context(), domain.ReplaceArgs{Job: job, DryRun: dryRun})
		},
	}

	configureReplaceFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(replaceCmd)
}

func configureReplaceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&replaceDirContains, dirContainsFlagName, defaultReplaceDirContains, "only edit files whose directory path contains this text")
	bindFlagToConfig(cmd.Flags().Lookup(dirContainsFlagName), replaceDirContainsKey)

	cmd.Flags().StringSliceVar(&replaceFiles, fileFlagName, defaultReplaceFiles, "file names to edit (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(fileFlagName), replaceFilesKey)

	cmd.Flags().StringVar(&replaceMarker, markerFlagName, defaultReplaceMarker, "text a file must contain to be edited")
	bindFlagToConfig(cmd.Flags().Lookup(markerFlagName), replaceMarkerKey)

	cmd.Flags().StringVar(&replaceGuard, guardFlagName, defaultReplaceGuard, "text whose presence means the edit was already applied")
	bindFlagToConfig(cmd.Flags().Lookup(guardFlagName), replaceGuardKey)

	cmd.Flags().StringVar(&replaceTarget, targetFlagName, defaultReplaceTarget, "literal text to replace (first occurrence)")
	bindFlagToConfig(cmd.Flags().Lookup(targetFlagName), replaceTargetKey)

	cmd.Flags().StringVar(&replaceReplacement, replacementFlagName, defaultReplaceReplacement, "literal replacement text")
	bindFlagToConfig(cmd.Flags().Lookup(replacementFlagName), replaceReplacementKey)

	cmd.Flags().BoolVarP(&replaceDryRun, dryRunFlagName, "n", false, "print a diff instead of writing files")
}

func replacementJobFromConfig(args []string) (m.ReplacementJob, error) {
	root, err := rootArg(args, replaceRootKey)
	if err != nil {
		return m.ReplacementJob{}, err
	}

	job := m.ReplacementJob{
		Root:        m.Path(root),
		DirContains: viper.GetString(replaceDirContainsKey),
		FileNames:   viper.GetStringSlice(replaceFilesKey),
		Exclude:     viper.GetStringSlice(excludeConfigKey),
		Marker:      viper.GetString(replaceMarkerKey),
		Guard:       viper.GetString(replaceGuardKey),
		Target:      viper.GetString(replaceTargetKey),
		Replacement: viper.GetString(replaceReplacementKey),
	}

	if err := job.Validate(); err != nil {
		return m.ReplacementJob{}, err
	}

	return job, nil
}
