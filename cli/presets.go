package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc"

	"go.ntppool.org/whowon/presets"
)

// PresetsCmd lists the builtin and configured presets
type PresetsCmd struct {
	PresetsFile string `type:"existingfile" env:"WHOWON_PRESETS_FILE" help:"YAML file with additional presets"`

	out io.Writer
}

func (cmd *PresetsCmd) Run() error {
	set, err := presets.Load(cmd.PresetsFile)
	if err != nil {
		return err
	}

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tWINNERS\tTIES\tDUPLICATES\tEXACT\tDESCRIPTION")
	for _, name := range set.Names() {
		p := set[name]
		winners := "-"
		if p.Winners > 0 {
			winners = fmt.Sprint(p.Winners)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			name, winners, orDash(p.Ties), orDash(p.Duplicates), p.Exact, p.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprint(out, heredoc.Doc(`

		Use --preset NAME with pick or watch. Flags given on the
		command line override the preset.
		`))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
