package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the household profile",
	Long:  `Show, update, or clear the household profile used for analysis.`,
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update the household profile. Only the flags you pass are changed.

Use --interactive to be prompted for every field.

Examples:
  fundwise profile set --name "Asha" --income 15000 --household 4 --land 2.5
  fundwise profile set --risk drought --risk "Price Crash"`,
	RunE: runProfileSet,
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the profile to defaults",
	RunE:  runProfileClear,
}

// Flags for profile set.
var (
	profileName        string
	profileState       string
	profileLand        float64
	profileCrop        string
	profileIncomeType  string
	profileIncome      float64
	profileHousehold   int
	profileDebt        float64
	profileRisks       []string
	profileInteractive bool
)

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileName, "name", "", "Farmer name")
	f.StringVar(&profileState, "state", "", "State (e.g. Maharashtra)")
	f.Float64Var(&profileLand, "land", 0, "Land holding in acres")
	f.StringVar(&profileCrop, "crop", "", "Primary crop (e.g. Soybean)")
	f.StringVar(&profileIncomeType, "income-type", "", "Income type: seasonal, mixed, or fixed")
	f.Float64Var(&profileIncome, "income", 0, "Monthly income in INR")
	f.IntVar(&profileHousehold, "household", 0, "Household size")
	f.Float64Var(&profileDebt, "debt", 0, "Existing debt in INR")
	f.StringSliceVar(&profileRisks, "risk", nil, "Risk exposure (repeatable)")
	f.BoolVarP(&profileInteractive, "interactive", "i", false, "Prompt for each field")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileClearCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	p := profileService.Get()
	if !profileService.HasProfile() {
		cmd.Println("No profile saved yet. Run 'fundwise profile set' to create one.")
		cmd.Println()
	}
	printProfile(cmd, p)
	return nil
}

func printProfile(cmd *cobra.Command, p domain.Profile) {
	name := p.Name
	if name == "" {
		name = "(not set)"
	}
	risks := make([]string, 0, len(p.RiskExposure))
	for _, r := range p.RiskExposure {
		risks = append(risks, r.Label())
	}
	if len(risks) == 0 {
		risks = append(risks, "none")
	}

	cmd.Println("Profile")
	cmd.Println("=======")
	cmd.Printf("  Name:           %s\n", name)
	cmd.Printf("  State:          %s\n", p.State)
	cmd.Printf("  Land:           %s acres\n", humanize.FormatFloat("#,###.##", p.LandAcres))
	cmd.Printf("  Crop:           %s\n", p.CropType)
	cmd.Printf("  Income type:    %s\n", p.IncomeType)
	cmd.Printf("  Monthly income: %s\n", formatINR(p.MonthlyIncomeINR))
	cmd.Printf("  Household size: %d\n", p.HouseholdSize)
	cmd.Printf("  Existing debt:  %s\n", formatINR(p.ExistingDebtINR))
	cmd.Printf("  Risk exposure:  %s\n", strings.Join(risks, ", "))
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	p := profileService.Get()
	if profileInteractive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("interactive mode requires a terminal")
		}
		promptProfile(cmd, bufio.NewReader(os.Stdin), &p)
	} else if err := applyProfileFlags(cmd, &p); err != nil {
		return err
	}

	in := domain.ProfileInput{Profile: p}
	if err := in.Validate(); err != nil {
		return err
	}

	saved := profileService.Save(in)
	cmd.Println("Profile saved.")
	cmd.Println()
	printProfile(cmd, saved)
	return nil
}

func applyProfileFlags(cmd *cobra.Command, p *domain.Profile) error {
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name = strings.TrimSpace(profileName)
	}
	if f.Changed("state") {
		state, err := parseState(profileState)
		if err != nil {
			return err
		}
		p.State = state
	}
	if f.Changed("land") {
		p.LandAcres = profileLand
	}
	if f.Changed("crop") {
		crop, err := parseCrop(profileCrop)
		if err != nil {
			return err
		}
		p.CropType = crop
	}
	if f.Changed("income-type") {
		it := domain.IncomeType(strings.ToLower(strings.TrimSpace(profileIncomeType)))
		if !containsValue(domain.AllIncomeTypes(), it) {
			return fmt.Errorf("%w: unknown income type %q", domain.ErrInvalidInput, profileIncomeType)
		}
		p.IncomeType = it
	}
	if f.Changed("income") {
		p.MonthlyIncomeINR = profileIncome
	}
	if f.Changed("household") {
		p.HouseholdSize = profileHousehold
	}
	if f.Changed("debt") {
		p.ExistingDebtINR = profileDebt
	}
	if f.Changed("risk") {
		risks, err := parseRisks(profileRisks)
		if err != nil {
			return err
		}
		p.RiskExposure = risks
	}
	return nil
}

func promptProfile(cmd *cobra.Command, reader *bufio.Reader, p *domain.Profile) {
	p.Name = promptString(cmd, reader, "Name", p.Name)

	states := domain.AllStates()
	p.State = states[promptChoice(cmd, reader, "State", toStrings(states), indexOf(states, p.State))]

	p.LandAcres = promptFloat(cmd, reader, "Land (acres)", p.LandAcres)

	crops := domain.AllCropTypes()
	p.CropType = crops[promptChoice(cmd, reader, "Crop", toStrings(crops), indexOf(crops, p.CropType))]

	types := domain.AllIncomeTypes()
	p.IncomeType = types[promptChoice(cmd, reader, "Income type", toStrings(types), indexOf(types, p.IncomeType))]

	p.MonthlyIncomeINR = promptFloat(cmd, reader, "Monthly income (INR)", p.MonthlyIncomeINR)
	p.HouseholdSize = int(promptFloat(cmd, reader, "Household size", float64(p.HouseholdSize)))
	p.ExistingDebtINR = promptFloat(cmd, reader, "Existing debt (INR)", p.ExistingDebtINR)

	current := make([]string, 0, len(p.RiskExposure))
	for _, r := range p.RiskExposure {
		current = append(current, r.Label())
	}
	cmd.Printf("Risks (comma separated) [%s]: ", strings.Join(current, ", "))
	if input := readLine(reader); input != "" {
		if risks, err := parseRisks(strings.Split(input, ",")); err == nil {
			p.RiskExposure = risks
		} else {
			cmd.Printf("  %v, keeping previous risks\n", err)
		}
	}
}

func runProfileClear(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	profileService.Clear()
	cmd.Println("Profile reset to defaults.")
	return nil
}

// Parsing helpers.

func parseState(raw string) (domain.State, error) {
	for _, s := range domain.AllStates() {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown state %q", domain.ErrInvalidInput, raw)
}

func parseCrop(raw string) (domain.CropType, error) {
	for _, c := range domain.AllCropTypes() {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown crop %q", domain.ErrInvalidInput, raw)
}

// parseRisks accepts keys ("crop_failure") or labels ("Crop Failure").
func parseRisks(raw []string) ([]domain.RiskExposure, error) {
	risks := make([]domain.RiskExposure, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		risk := domain.NormaliseRiskLabel(r)
		if !containsValue(domain.AllRiskExposures(), risk) {
			return nil, fmt.Errorf("%w: unknown risk %q", domain.ErrInvalidInput, r)
		}
		risks = append(risks, risk)
	}
	return risks, nil
}

func formatINR(v float64) string {
	return "₹" + humanize.FormatFloat("#,###.", v)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func promptString(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	cmd.Printf("%s [%s]: ", label, current)
	if input := readLine(reader); input != "" {
		return input
	}
	return current
}

func promptFloat(cmd *cobra.Command, reader *bufio.Reader, label string, current float64) float64 {
	cmd.Printf("%s [%s]: ", label, strconv.FormatFloat(current, 'f', -1, 64))
	input := readLine(reader)
	if input == "" {
		return current
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", ""), 64)
	if err != nil {
		cmd.Printf("  not a number, keeping %s\n", strconv.FormatFloat(current, 'f', -1, 64))
		return current
	}
	return v
}

// promptChoice returns the zero-based index of the chosen option.
func promptChoice(cmd *cobra.Command, reader *bufio.Reader, label string, options []string, current int) int {
	cmd.Println(label + ":")
	for i, o := range options {
		cmd.Printf("  %d. %s\n", i+1, o)
	}
	cmd.Printf("Enter choice [%d]: ", current+1)
	return parseChoice(readLine(reader), len(options), current+1) - 1
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return 0
}

func containsValue[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
