package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/serkey/driver"
	"github.com/serkey/keymaps"
)

var keymapDescriptions = map[string]string{
	keymaps.Kaypro: "Kaypro II keyboard, every key pressed and released",
	keymaps.ASCII:  "ASCII terminal, one transition per key",
	keymaps.Media:  "media control pad, bytes 0x00-0x0e release and 0x80-0x8e press",
	keymaps.Custom: "read from --keymap-file",
}

func newKeymapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keymaps",
		Short: "List the available keymaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout())
			table.Header("Name", "Description")
			for _, name := range keymaps.Names() {
				if err := table.Append([]string{name, keymapDescriptions[name]}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func newDumpCmd(v *viper.Viper) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "dump <keymap>",
		Short: "Print a keymap table",
		Long: `Print every byte of a keymap with the key it produces. Unmapped bytes are
skipped unless --all is given. The output is a starting point for a custom
keymap file.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return driver.NewConfigError("parse arguments", fmt.Errorf("dump takes one keymap name, got %d arguments", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadKeymap(args[0], v.GetString("keymap_file"))
			if err != nil {
				return driver.NewConfigError("select keymap", err)
			}
			return dumpKeymap(cmd, &m, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include unmapped bytes")
	return cmd
}

// newTable returns a borderless, left-aligned table.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.SeparatorsNone,
				Lines:      tw.LinesNone,
			},
		})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
}

func dumpKeymap(cmd *cobra.Command, m *keymaps.Keymap, all bool) error {
	table := newTable(cmd.OutOrStdout())
	table.Header("Byte", "Char", "Key", "Flags")
	for i := range m {
		a := m.Lookup(byte(i))
		if !a.Mapped() && !all {
			continue
		}
		key := "-"
		if a.Mapped() {
			key = keymaps.KeyName(a.Key())
		}
		row := []string{fmt.Sprintf("0x%02x", i), charLabel(byte(i)), key, flagLabel(a)}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("dump byte 0x%02x: %w", i, err)
		}
	}
	return table.Render()
}

func charLabel(b byte) string {
	if b > 0x20 && b < 0x7f {
		return string(rune(b))
	}
	if b == ' ' {
		return "SP"
	}
	return strings.Trim(strconv.QuoteRuneToASCII(rune(b)), "'")
}

func flagLabel(a keymaps.KeyAction) string {
	if !a.Mapped() {
		return "-"
	}
	var flags []string
	if a.Control {
		flags = append(flags, "control")
	}
	if a.Shift {
		flags = append(flags, "shift")
	}
	if a.MakeBreak {
		flags = append(flags, "makebreak")
	} else {
		flags = append(flags, "toggle")
	}
	if a.Pressed() {
		flags = append(flags, "press")
	}
	return strings.Join(flags, ",")
}
