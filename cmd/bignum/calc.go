package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"bignum/internal/bignum"
)

// calcOp is one calc operation. Modular ops take the modulus as an extra
// trailing argument, or from --mod or [calc] modulus when it is omitted.
type calcOp struct {
	arity   int
	modular bool
	usage   string
	fn      func(args []bignum.BigInt, m bignum.BigInt) ([]bignum.BigInt, error)
}

func one(x bignum.BigInt, err error) ([]bignum.BigInt, error) {
	if err != nil {
		return nil, err
	}
	return []bignum.BigInt{x}, nil
}

func binary(f func(a, b bignum.BigInt) (bignum.BigInt, error)) func([]bignum.BigInt, bignum.BigInt) ([]bignum.BigInt, error) {
	return func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		return one(f(args[0], args[1]))
	}
}

func modBinary(f func(a, b, m bignum.BigInt) (bignum.BigInt, error)) func([]bignum.BigInt, bignum.BigInt) ([]bignum.BigInt, error) {
	return func(args []bignum.BigInt, m bignum.BigInt) ([]bignum.BigInt, error) {
		return one(f(args[0], args[1], m))
	}
}

var calcOps = map[string]calcOp{
	"add": {arity: 2, usage: "a b", fn: binary(bignum.IntAdd)},
	"sub": {arity: 2, usage: "a b", fn: binary(bignum.IntSub)},
	"mul": {arity: 2, usage: "a b", fn: binary(bignum.IntMul)},
	"div": {arity: 2, usage: "a b (truncated toward zero)", fn: binary(bignum.IntDiv)},
	"mod": {arity: 2, usage: "a b (remainder of div, sign of a)", fn: binary(bignum.IntMod)},
	"gcd": {arity: 2, usage: "a b", fn: func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		return one(bignum.GCD(args[0], args[1]), nil)
	}},
	"and": {arity: 2, usage: "a b (two's complement)", fn: binary(bignum.IntAnd)},
	"or":  {arity: 2, usage: "a b (two's complement)", fn: binary(bignum.IntOr)},
	"xor": {arity: 2, usage: "a b (two's complement)", fn: binary(bignum.IntXor)},
	"sqr": {arity: 1, usage: "a", fn: func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		return one(bignum.IntSqr(args[0]))
	}},
	"divmod": {arity: 2, usage: "a b (prints quotient then remainder)", fn: func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		q, r, err := bignum.IntDivMod(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return []bignum.BigInt{q, r}, nil
	}},
	"pow": {arity: 2, usage: "a e", fn: func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		e, err := exponent(args[1])
		if err != nil {
			return nil, err
		}
		return one(bignum.IntPow(args[0], e))
	}},
	"cmp": {arity: 2, usage: "a b (prints -1, 0 or 1)", fn: func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		return one(bignum.IntFromInt(args[0].Cmp(args[1])), nil)
	}},
	"shl": {arity: 2, usage: "a n", fn: shiftOp(bignum.IntLsh)},
	"shr": {arity: 2, usage: "a n (truncated toward zero)", fn: shiftOp(bignum.IntRsh)},
	"bitlen": {arity: 1, usage: "a", fn: func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		return one(bignum.IntFromInt(args[0].BitLen()), nil)
	}},
	"reduce": {arity: 1, modular: true, usage: "a [m] (result in [0, m))", fn: func(args []bignum.BigInt, m bignum.BigInt) ([]bignum.BigInt, error) {
		return one(bignum.Mod(args[0], m))
	}},
	"modadd": {arity: 2, modular: true, usage: "a b [m]", fn: modBinary(bignum.ModAdd)},
	"modsub": {arity: 2, modular: true, usage: "a b [m]", fn: modBinary(bignum.ModSub)},
	"modmul": {arity: 2, modular: true, usage: "a b [m]", fn: modBinary(bignum.ModMul)},
	"modpow": {arity: 2, modular: true, usage: "base exp [m] (constant time in the exponent)", fn: modBinary(bignum.ModPow)},
	"modsqr": {arity: 1, modular: true, usage: "a [m]", fn: func(args []bignum.BigInt, m bignum.BigInt) ([]bignum.BigInt, error) {
		return one(bignum.ModSqr(args[0], m))
	}},
}

func shiftOp(f func(bignum.BigInt, int) (bignum.BigInt, error)) func([]bignum.BigInt, bignum.BigInt) ([]bignum.BigInt, error) {
	return func(args []bignum.BigInt, _ bignum.BigInt) ([]bignum.BigInt, error) {
		n, err := smallInt(args[1], "shift")
		if err != nil {
			return nil, err
		}
		return one(f(args[0], n))
	}
}

func calcHelp() string {
	names := make([]string, 0, len(calcOps))
	for name := range calcOps {
		names = append(names, name)
	}
	slices.Sort(names)
	var sb strings.Builder
	sb.WriteString("Operations:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-7s %s\n", name, calcOps[name].usage)
	}
	return sb.String()
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		inFlag, outFlag, modFlag string
		width                    int
	)
	cmd := &cobra.Command{
		Use:   "calc <op> <args...>",
		Short: "Evaluate one arithmetic operation",
		Long:  "Evaluate one arithmetic operation on arbitrary-precision integers.\n\n" + calcHelp(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := calcOps[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown operation %q\n%s", args[0], calcHelp())
			}
			in, err := parseInputFormat(inFlag)
			if err != nil {
				return err
			}
			out, err := a.outputFormat(cmd, "out", outFlag)
			if err != nil {
				return err
			}
			operands := args[1:]
			switch {
			case len(operands) == op.arity:
			case op.modular && len(operands) == op.arity+1:
			default:
				return fmt.Errorf("%s takes %s", args[0], op.usage)
			}

			values := make([]bignum.BigInt, len(operands))
			err = a.measure("parse", func() error {
				for i, s := range operands {
					v, err := parseValue(s, in)
					if err != nil {
						return fmt.Errorf("argument %d: %w", i+1, err)
					}
					values[i] = v
				}
				return nil
			})
			if err != nil {
				return err
			}

			var m bignum.BigInt
			if op.modular {
				if len(values) > op.arity {
					m, values = values[op.arity], values[:op.arity]
				} else if m, err = a.defaultModulus(modFlag, in); err != nil {
					return err
				}
			}

			var results []bignum.BigInt
			err = a.measure(args[0], func() error {
				results, err = op.fn(values, m)
				return err
			})
			if err != nil {
				return err
			}
			for _, r := range results {
				s, err := formatValue(r, out, width)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inFlag, "in", "auto", "input format (auto|dec|hex|bytes|msgpack|cbor)")
	cmd.Flags().StringVar(&outFlag, "out", "", "output format (dec|hex|bytes|msgpack|cbor); default from [output] format")
	cmd.Flags().StringVar(&modFlag, "mod", "", "modulus for modular operations when not given as an argument")
	cmd.Flags().IntVar(&width, "width", 0, "left-pad bytes output to this many bytes")
	return cmd
}

var errNoModulus = errors.New("no modulus: pass it as the last argument, with --mod, or set [calc] modulus")

func (a *app) defaultModulus(flag string, in inputFormat) (bignum.BigInt, error) {
	if flag != "" {
		return parseValue(flag, in)
	}
	if a.cfg.Calc.Modulus != nil {
		return *a.cfg.Calc.Modulus, nil
	}
	return bignum.BigInt{}, errNoModulus
}

// outputFormat resolves the output flag called name, falling back to the
// config file when it was not given.
func (a *app) outputFormat(cmd *cobra.Command, name, value string) (outputFormat, error) {
	if cmd.Flags().Changed(name) {
		return parseOutputFormat(value)
	}
	return parseOutputFormat(a.cfg.Output.Format)
}
