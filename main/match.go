package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ontanj/cmatch"
	"github.com/ontanj/cmatch/config"
	"github.com/ontanj/cmatch/he"
	"github.com/ontanj/cmatch/logging"
	"github.com/ontanj/cmatch/metrics"
	"github.com/ontanj/cmatch/orderfile"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type MatchCmd struct {
	config.Config

	ConfigPath string `long:"config" description:"TOML configuration file, flags take precedence over its values"`
	Orders     string `long:"orders" required:"true" description:"Order file (.json, .yaml or .yml)"`
	Format     string `long:"format" choice:"text" choice:"json" choice:"yaml" default:"text" description:"Report format"`

	args []string
}

func (cmd *MatchCmd) Execute(_ []string) error {
	if cmd.ConfigPath != "" {
		cfg, err := config.Read(cmd.ConfigPath)
		if err != nil {
			return err
		}
		cmd.Config = cfg
		// parse the cli args again so flags win over the file
		if _, err := flags.NewParser(&cmd.Config, flags.IgnoreUnknown).ParseArgs(cmd.args); err != nil {
			return err
		}
	}

	log := logging.NewLoggerFromConfig(cmd.Logging)
	defer log.AtExit()

	orders, err := orderfile.Load(cmd.Orders)
	if err != nil {
		return err
	}

	log.Info("generating keys",
		zap.String("scheme", cmd.Crypto.Scheme),
		zap.Int("key-shares", cmd.Crypto.KeyShares),
	)
	cs, sk, err := he.Setup(cmd.Crypto)
	if err != nil {
		return errors.Wrap(err, "could not set up encryption")
	}
	oracle := he.NewKeyHolder(cs, sk)
	bits, statBits := cmd.Crypto.Comparison()
	cmp, err := he.NewComparator(cs, oracle, bits, statBits)
	if err != nil {
		return errors.Wrap(err, "could not set up comparison")
	}

	var (
		observers []cmatch.Observer
		mobs      *metrics.Observer
	)
	if cmd.Metrics.Enabled() {
		if mobs, err = metrics.NewObserver(); err != nil {
			return err
		}
		observers = append(observers, mobs)
	}

	m, err := cmatch.NewMatcher(log, cmd.Matching, cs, cmp, oracle, observers...)
	if err != nil {
		return err
	}
	report, err := m.MatchPair(orders.Pair, orders.BuyOrders, orders.SellOrders)
	if err != nil {
		return err
	}
	if err := printReport(os.Stdout, cmd.Format, report); err != nil {
		return err
	}

	if mobs != nil {
		if err := mobs.WriteTextfile(cmd.Metrics.Textfile); err != nil {
			return err
		}
		log.Info("metrics written", zap.String("path", cmd.Metrics.Textfile))
	}
	return nil
}

func printReport(w io.Writer, format string, r *cmatch.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		buf, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		return err
	}

	if r.Pair != "" {
		fmt.Fprintf(w, "Pair: %s\n", r.Pair)
	}
	fmt.Fprintf(w, "Abundant side: %s\n", r.Direction.Trimmed())
	fmt.Fprintf(w, "Transaction volume: %d\n", r.TransactionVolume)
	fmt.Fprintf(w, "Addressable volume: %d\n", r.AddressableVolume)
	fmt.Fprintf(w, "Buy fills: %v\n", r.BuyFill)
	fmt.Fprintf(w, "Sell fills: %v\n", r.SellFill)
	return nil
}

var matchCmd MatchCmd

func Match(args []string, parser *flags.Parser) error {
	matchCmd = MatchCmd{
		Config: config.NewDefaultConfig(),
		args:   args,
	}
	_, err := parser.AddCommand("match", "Match an order file", "Encrypt the orders of a file, match them and print the fills", &matchCmd)
	return err
}
