package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

func newPetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Inspect stored dog profiles",
	}
	cmd.AddCommand(newPetsListCmd())
	return cmd
}

func newPetsListCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an owner's dogs with targets and today's intake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner = strings.TrimSpace(owner)
			if owner == "" {
				return errOwnerRequired
			}

			ctx := cmd.Context()
			a, err := loadApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.pets.List(ctx, owner)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pets found.")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, p := range list {
				prof, err := a.pets.Detail(ctx, owner, p.Name)
				if err != nil {
					return err
				}
				rows = append(rows, profileRow(prof, a.pets))
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(petColumns, rows, petsFooter(len(rows))))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	return cmd
}

var petColumns = []column{
	{Header: "Name", Align: text.AlignLeft, WidthMax: 24},
	{Header: "Age", Align: text.AlignRight},
	{Header: "Weight", Align: text.AlignRight},
	{Header: "Status", Align: text.AlignLeft, WidthMax: 32},
	{Header: "Calories", Align: text.AlignRight},
	{Header: "Water", Align: text.AlignRight},
	{Header: "Today", Align: text.AlignRight},
}

func petsFooter(n int) string {
	if n == 1 {
		return "1 dog"
	}
	return fmt.Sprintf("%d dogs", n)
}

func profileRow(prof pets.Profile, svc *pets.Service) []string {
	p := prof.Pet
	row := []string{
		p.Name,
		strconv.Itoa(p.AgeYears(svc.Now())),
		strconv.FormatFloat(p.WeightKg, 'f', -1, 64) + " kg",
		"-",
		"-",
		"-",
		fmt.Sprintf("%d kcal / %d ml", prof.Today.Calories, prof.Today.WaterML),
	}
	if t := prof.Target; t != nil {
		row[3] = fmt.Sprintf("%d %s", int(p.Status), p.Status.Label())
		row[4] = fmt.Sprintf("%.0f-%.0f kcal", t.DER.Min, t.DER.Max)
		row[5] = fmt.Sprintf("%.0f-%.0f ml", t.Water.Min, t.Water.Max)
	}
	return row
}
