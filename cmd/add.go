package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/hidralife/internal/cli"
	"github.com/theirongolddev/hidralife/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// amountValue is a pflag.Value accepting a container name or a milliliter count.
type amountValue struct {
	ml    int
	label string
}

var _ pflag.Value = (*amountValue)(nil)

func (v *amountValue) String() string {
	if v.ml == 0 {
		return ""
	}
	return strconv.Itoa(v.ml)
}

func (v *amountValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := model.ContainerByName(s); ok {
		v.ml, v.label = c.ML(), c.Label()
		return nil
	}

	ml, err := strconv.Atoi(strings.TrimSuffix(s, "ml"))
	if err != nil {
		return fmt.Errorf("unknown size %q (use small, medium, large, bottle or a number of ml)", s)
	}
	if ml <= 0 {
		return errors.New("amount must be positive")
	}
	v.ml, v.label = ml, model.ContainerSize(ml).Label()
	return nil
}

func (v *amountValue) Type() string { return "size" }

var flagAddSize amountValue

var addCmd = &cobra.Command{
	Use:   "add [small|medium|large|bottle|<ml>]",
	Short: "Log a drink",
	Example: "  hidralife add medium\n" +
		"  hidralife add 300\n" +
		"  hidralife add --size bottle",
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Var(&flagAddSize, "size", "Container (small 200, medium 350, large 500, bottle 750) or ml")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	size := flagAddSize
	if len(args) == 1 {
		if err := size.Set(args[0]); err != nil {
			return err
		}
	}
	if size.ml == 0 {
		return errors.New("specify what you drank, e.g. `hidralife add medium`")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if _, err := s.tracker.AddWater(size.ml); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}

	info("%s\n", cli.RenderSuccess(fmt.Sprintf("Added %s (%s)", cli.FormatML(size.ml), size.label)))
	info("  %s\n", cli.RenderProgressBar(s.tracker.Intake(), s.tracker.Goal(), 30))
	return nil
}
