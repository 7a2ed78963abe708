package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		from, to string
		width    int
	)
	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a number between text and binary encodings",
		Example: `  bignum convert 0xff --to dec
  bignum convert 255 --to bytes --width 4
  bignum convert --to cbor -- -42
  bignum convert a20101034101 --from cbor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := parseInputFormat(from)
			if err != nil {
				return err
			}
			out, err := a.outputFormat(cmd, "to", to)
			if err != nil {
				return err
			}
			x, err := parseValue(args[0], in)
			if err != nil {
				return err
			}
			s, err := formatValue(x, out, width)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "auto", "input format (auto|dec|hex|bytes|msgpack|cbor)")
	cmd.Flags().StringVar(&to, "to", "", "output format (dec|hex|bytes|msgpack|cbor); default from [output] format")
	cmd.Flags().IntVar(&width, "width", 0, "left-pad bytes output to this many bytes")
	return cmd
}
