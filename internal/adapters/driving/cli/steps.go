package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Show workflow steps and which are unlocked",
	Long: `List every workflow step with its wizard position and whether it can be
entered. Result steps unlock once an analysis has succeeded in this session.`,
	Args: cobra.NoArgs,
	RunE: runSteps,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, _ []string) error {
	if navigation == nil {
		return errors.New("navigation not configured")
	}
	if profileService != nil {
		navigation.SetHasProfile(profileService.HasProfile())
	}
	if analysisGateway != nil {
		navigation.SetHasResult(analysisGateway.Result() != nil)
	}

	current := navigation.Current()
	for _, step := range domain.AllSteps() {
		marker := "  "
		if step == current {
			marker = "> "
		}

		position := "   "
		if n, ok := navigation.OrdinalOf(step); ok {
			position = strconv.Itoa(n) + ". "
		}

		status := ""
		if !navigation.CanEnter(step) {
			status = " (locked)"
		}
		cmd.Printf("%s%s%s%s\n", marker, position, step.Title(), status)
	}

	cmd.Println()
	if navigation.HasProfile() {
		cmd.Println("Profile: saved")
	} else {
		cmd.Println("Profile: not saved")
	}
	if !navigation.HasResult() {
		cmd.Println("Run 'fundwise analyse' to unlock the result steps.")
	}
	return nil
}
