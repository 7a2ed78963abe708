package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bignum/internal/bignum"
	"bignum/internal/rng"
)

type randFlags struct {
	seed  string
	out   string
	count int
}

func newRandCmd(a *app) *cobra.Command {
	var rf randFlags
	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Draw random integers",
		Long: "Draw random integers from the system CSPRNG, or from a reproducible\n" +
			"ChaCha20 stream when --seed is given. Seeded output is not secret.",
	}
	cmd.PersistentFlags().StringVar(&rf.seed, "seed", "", "derive a deterministic stream from this seed")
	cmd.PersistentFlags().StringVar(&rf.out, "out", "", "output format (dec|hex|bytes|msgpack|cbor)")
	cmd.PersistentFlags().IntVar(&rf.count, "count", 1, "number of values to draw")

	var (
		topName string
		odd     bool
	)
	bits := &cobra.Command{
		Use:   "bits <n>",
		Short: "Random integer of at most n bits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseCount(args[0], "bit count")
			if err != nil {
				return err
			}
			top, err := bignum.ParseTop(topName)
			if err != nil {
				return err
			}
			return a.draw(cmd, rf, "rand bits", func(r io.Reader) (bignum.BigInt, error) {
				return bignum.RandomBits(r, n, top, odd)
			})
		},
	}
	bits.Flags().StringVar(&topName, "top", "any", "force top bits: any, one (exactly n bits) or two (top two bits set)")
	bits.Flags().BoolVar(&odd, "odd", false, "force the result to be odd")

	below := &cobra.Command{
		Use:   "below <bound>",
		Short: "Uniform integer in [0, bound)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := parseValue(args[0], inAuto)
			if err != nil {
				return err
			}
			return a.draw(cmd, rf, "rand below", func(r io.Reader) (bignum.BigInt, error) {
				return bignum.RandomBelow(r, bound)
			})
		},
	}

	rangeCmd := &cobra.Command{
		Use:   "range <lo> <hi>",
		Short: "Uniform integer in [lo, hi)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := parseValue(args[0], inAuto)
			if err != nil {
				return err
			}
			hi, err := parseValue(args[1], inAuto)
			if err != nil {
				return err
			}
			return a.draw(cmd, rf, "rand range", func(r io.Reader) (bignum.BigInt, error) {
				return bignum.RandomRange(r, lo, hi)
			})
		},
	}

	cmd.AddCommand(bits, below, rangeCmd)
	return cmd
}

func (a *app) draw(cmd *cobra.Command, rf randFlags, phase string, gen func(io.Reader) (bignum.BigInt, error)) error {
	if rf.count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", rf.count)
	}
	out, err := a.outputFormat(cmd, "out", rf.out)
	if err != nil {
		return err
	}
	src := rng.ForSeed(rf.seed)
	if rf.seed != "" {
		a.log.Warn("using a seeded stream; output is reproducible and must not be used as a secret")
	}
	values := make([]bignum.BigInt, rf.count)
	err = a.measure(phase, func() error {
		for i := range values {
			x, err := gen(src)
			if err != nil {
				return err
			}
			values[i] = x
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, x := range values {
		s, err := formatValue(x, out, 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

// parseCount reads a small non-negative decimal such as a bit count.
func parseCount(s, what string) (int, error) {
	x, err := parseValue(s, inDec)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	return smallInt(x, what)
}
