package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loctool.dev/pkg/loctool/internal/domain"
	m "loctool.dev/pkg/loctool/internal/model"
)

const scanLongDescription = `Scan a locale folder for files that contain characters from a Unicode
code-point range. The default range U+4E00..U+9FFF (CJK Unified Ideographs)
finds Chinese text left untranslated in other locales.

Matching files are printed one per line in walk order, followed by a count.
Files that cannot be read are reported and skipped; a missing root prints a
message and an empty result.

` + excludeHelp

var scanExtensions []string
var scanLow string
var scanHigh string
var scanPolicy string

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Find files containing characters from a code-point range",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := scanTargetFromConfig(args)
			if err != nil {
				return err
			}

			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			return workflow.Scan(cmd.Context(), domain.ScanArgs{Target: target})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&scanExtensions, extFlagName, "e", defaultScanExtensions, "file extensions to scan (can be repeated or comma separated)")
	bindFlagToConfig(cmd.Flags().Lookup(extFlagName), scanExtensionsKey)

	cmd.Flags().StringVar(&scanLow, lowFlagName, defaultScanLow, "lowest code point of the range (decimal, 0x hex or U+XXXX)")
	bindFlagToConfig(cmd.Flags().Lookup(lowFlagName), scanLowKey)

	cmd.Flags().StringVar(&scanHigh, highFlagName, defaultScanHigh, "highest code point of the range, inclusive")
	bindFlagToConfig(cmd.Flags().Lookup(highFlagName), scanHighKey)

	cmd.Flags().StringVar(&scanPolicy, policyFlagName, defaultScanPolicy, "match policy: file (whole content) or line (stop at first matching line)")
	bindFlagToConfig(cmd.Flags().Lookup(policyFlagName), scanPolicyKey)
}

func scanTargetFromConfig(args []string) (m.ScanTarget, error) {
	root, err := rootArg(args, scanRootKey)
	if err != nil {
		return m.ScanTarget{}, err
	}

	low, err := parseCodepoint(viper.GetString(scanLowKey))
	if err != nil {
		return m.ScanTarget{}, err
	}

	high, err := parseCodepoint(viper.GetString(scanHighKey))
	if err != nil {
		return m.ScanTarget{}, err
	}

	policy, err := m.ParseMatchPolicy(viper.GetString(scanPolicyKey))
	if err != nil {
		return m.ScanTarget{}, err
	}

	target := m.ScanTarget{
		Root:       m.Path(root),
		Extensions: viper.GetStringSlice(scanExtensionsKey),
		Exclude:    viper.GetStringSlice(excludeConfigKey),
		Range:      m.CodepointRange{Low: low, High: high},
		Policy:     policy,
	}

	if err := target.Range.Validate(); err != nil {
		return m.ScanTarget{}, err
	}

	return target, nil
}
