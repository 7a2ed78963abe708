package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bignum/internal/bignum"
	"bignum/internal/primecache"
	"bignum/internal/primesearch"
	"bignum/internal/rng"
)

const cacheApp = "bignum"

func newPrimeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prime",
		Short: "Test and generate primes",
	}
	cmd.AddCommand(newPrimeTestCmd(a), newPrimeGenCmd(a), newPrimeCachedCmd(a))
	return cmd
}

func newPrimeTestCmd(a *app) *cobra.Command {
	var (
		rounds int
		seed   string
	)
	cmd := &cobra.Command{
		Use:   "test <n>...",
		Short: "Miller-Rabin probable-prime test",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rounds") {
				rounds = a.cfg.Prime.Rounds
			}
			src := rng.ForSeed(seed)
			prime := color.New(color.FgGreen, color.Bold)
			composite := color.New(color.FgRed)
			for _, arg := range args {
				n, err := parseValue(arg, inAuto)
				if err != nil {
					return err
				}
				var ok bool
				err = a.measure("prime test", func() error {
					ok, err = bignum.IsProbablePrime(src, n, rounds)
					return err
				})
				if err != nil {
					return err
				}
				verdict := composite.Sprint("composite")
				if ok {
					verdict = prime.Sprint("probably prime")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n, verdict)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Miller-Rabin rounds (0 picks a size-based default)")
	cmd.Flags().StringVar(&seed, "seed", "", "deterministic witness stream")
	return cmd
}

type genFlags struct {
	bits        int
	safe        bool
	count       int
	jobs        int
	rounds      int
	maxAttempts int
	add, rem    string
	seed        string
	out         string
	ui          string
	cache       bool
	reuse       bool
}

func newPrimeGenCmd(a *app) *cobra.Command {
	var gf genFlags
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random primes of an exact bit length",
		Example: `  bignum prime gen --bits 1024
  bignum prime gen --bits 2048 --safe --count 2 --jobs 8 --ui on
  bignum prime gen --bits 64 --add 12 --rem 11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.primeGen(cmd, gf)
		},
	}
	f := cmd.Flags()
	f.IntVar(&gf.bits, "bits", 0, "exact bit length of each prime (required)")
	f.BoolVar(&gf.safe, "safe", false, "generate safe primes p with (p-1)/2 prime")
	f.IntVar(&gf.count, "count", 1, "number of primes")
	f.IntVar(&gf.jobs, "jobs", 0, "parallel searches (0: [prime] jobs, then GOMAXPROCS)")
	f.IntVar(&gf.rounds, "rounds", 0, "Miller-Rabin rounds (0: [prime] rounds, then size-based)")
	f.IntVar(&gf.maxAttempts, "max-attempts", 0, "candidates per prime before giving up (0: [prime] max_attempts, then default)")
	f.StringVar(&gf.add, "add", "", "only accept p with p mod add = rem")
	f.StringVar(&gf.rem, "rem", "", "remainder for --add (default 1)")
	f.StringVar(&gf.seed, "seed", "", "deterministic candidate stream (never for secret primes)")
	f.StringVar(&gf.out, "out", "", "output format (dec|hex|bytes|msgpack|cbor)")
	f.StringVar(&gf.ui, "ui", "off", "live progress view (auto|on|off)")
	f.BoolVar(&gf.cache, "cache", false, "store generated primes in the prime cache")
	f.BoolVar(&gf.reuse, "reuse", false, "serve primes from the cache before searching")
	_ = cmd.MarkFlagRequired("bits")
	return cmd
}

func (a *app) primeGen(cmd *cobra.Command, gf genFlags) error {
	if gf.count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", gf.count)
	}
	out, err := a.outputFormat(cmd, "out", gf.out)
	if err != nil {
		return err
	}
	mode, err := readUIMode(gf.ui)
	if err != nil {
		return err
	}
	req := primesearch.Request{
		Bits:        gf.bits,
		Safe:        gf.safe,
		Rounds:      firstPositive(gf.rounds, a.cfg.Prime.Rounds),
		MaxAttempts: firstPositive(gf.maxAttempts, a.cfg.Prime.MaxAttempts),
		Jobs:        firstPositive(gf.jobs, a.cfg.Prime.Jobs),
		Rand:        rng.ForSeed(gf.seed),
	}
	if gf.add != "" {
		if req.Add, err = parseValue(gf.add, inAuto); err != nil {
			return fmt.Errorf("--add: %w", err)
		}
	}
	if gf.rem != "" {
		if gf.add == "" {
			return fmt.Errorf("--rem needs --add")
		}
		if req.Rem, err = parseValue(gf.rem, inAuto); err != nil {
			return fmt.Errorf("--rem: %w", err)
		}
	}

	var cache *primecache.Cache
	if (gf.cache || gf.reuse || a.cfg.Cache.Enabled) && gf.add == "" {
		if cache, err = a.openCache(); err != nil {
			return err
		}
	} else if gf.add != "" && (gf.cache || gf.reuse) {
		a.log.Warn("the prime cache does not store --add/--rem primes; ignoring --cache and --reuse")
	}

	var primes []bignum.BigInt
	if gf.reuse {
		cached, err := cache.Load(gf.bits, gf.safe)
		if err != nil {
			return err
		}
		primes = cached[:min(len(cached), gf.count)]
		a.log.WithFields(log.Fields{"bits": gf.bits, "safe": gf.safe, "hits": len(primes), "wanted": gf.count}).Info("prime cache lookup")
	}

	if need := gf.count - len(primes); need > 0 {
		req.Count = need
		var results []primesearch.Result
		err = a.measure("prime gen", func() error {
			results, err = a.search(cmd, req, shouldUseTUI(mode, os.Stderr))
			return err
		})
		if err != nil {
			return err
		}
		fresh := make([]bignum.BigInt, len(results))
		for i, r := range results {
			fresh[i] = r.Prime
		}
		if gf.cache || a.cfg.Cache.Enabled {
			if err := cache.Append(gf.bits, gf.safe, fresh...); err != nil {
				return err
			}
			a.log.WithField("count", len(fresh)).Info("stored primes in cache")
		}
		primes = append(primes, fresh...)
	}

	for _, p := range primes {
		s, err := formatValue(p, out, 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}

// search runs the batch, with the progress view when useUI is set and with
// per-job log lines otherwise.
func (a *app) search(cmd *cobra.Command, req primesearch.Request, useUI bool) ([]primesearch.Result, error) {
	if useUI {
		title := fmt.Sprintf("%d-bit %s", req.Bits, kindName(req.Safe))
		return runSearchWithUI(cmd.Context(), title, req)
	}
	req.Sink = primesearch.SinkFunc(func(ev primesearch.Event) {
		switch ev.Status {
		case primesearch.StatusDone:
			a.log.WithFields(log.Fields{
				"job":      ev.Job,
				"attempts": ev.Attempts,
				"elapsed":  ev.Elapsed.Round(time.Millisecond),
			}).Info("prime found")
		case primesearch.StatusError:
			a.log.WithField("job", ev.Job).WithError(ev.Err).Debug("search failed")
		case primesearch.StatusSearching:
			a.log.WithFields(log.Fields{"job": ev.Job, "attempts": ev.Attempts}).Trace("searching")
		}
	})
	return primesearch.Run(cmd.Context(), req)
}

func (a *app) openCache() (*primecache.Cache, error) {
	if a.cfg.Cache.Dir != "" {
		return primecache.OpenDir(a.cfg.Cache.Dir)
	}
	return primecache.Open(cacheApp)
}

func newPrimeCachedCmd(a *app) *cobra.Command {
	var (
		bits     int
		safe     bool
		clearAll bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "cached",
		Short: "List or clear cached primes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := a.openCache()
			if err != nil {
				return err
			}
			if clearAll {
				a.log.WithField("dir", cache.Dir()).Info("clearing prime cache")
				return cache.Clear()
			}
			if bits <= 0 {
				return fmt.Errorf("--bits is required unless --clear is set")
			}
			format, err := a.outputFormat(cmd, "out", out)
			if err != nil {
				return err
			}
			primes, err := cache.Load(bits, safe)
			if err != nil {
				return err
			}
			if len(primes) == 0 {
				a.log.WithFields(log.Fields{"bits": bits, "safe": safe}).Info("no cached primes")
			}
			for _, p := range primes {
				s, err := formatValue(p, format, 0)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 0, "bit length to list")
	cmd.Flags().BoolVar(&safe, "safe", false, "list safe primes")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every cached prime")
	cmd.Flags().StringVar(&out, "out", "", "output format (dec|hex|bytes|msgpack|cbor)")
	return cmd
}

func kindName(safe bool) string {
	if safe {
		return "safe primes"
	}
	return "primes"
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}
