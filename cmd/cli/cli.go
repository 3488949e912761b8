package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/canopy-network/canopy-amm/cmd/rpc"
	"github.com/canopy-network/canopy-amm/controller"
	"github.com/canopy-network/canopy-amm/fsm"
	"github.com/canopy-network/canopy-amm/lib"
	"github.com/canopy-network/canopy-amm/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rootCmd = &cobra.Command{
	Use:   "canopy-amm",
	Short: "the canopy constant product exchange",
	// every command but version needs the data directory
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd == versionCmd {
			return
		}
		config = InitializeDataDirectory(DataDir, genesisOwner, lib.NewDefaultLogger())
		l = lib.NewLogger(lib.LoggerConfig{Level: config.GetLogLevel()}, config.DataDirPath)
		client = rpc.NewClient(config.RPCUrl, config.AdminRPCUrl)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rpc.SoftwareVersion)
	},
}

var (
	client, config, l     = &rpc.Client{}, lib.Config{}, lib.LoggerI(nil)
	DataDir, genesisOwner = "", ""
)

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.PersistentFlags().StringVar(&DataDir, "data-dir", lib.DefaultDataDirPath(), "custom data directory location")
	startCmd.Flags().StringVar(&genesisOwner, "owner", "sys", "the configuration owner written to a new genesis file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the exchange node",
	Run: func(cmd *cobra.Command, args []string) {
		Start()
	},
}

// Start() is the entrypoint of the application
func Start() {
	// initialize the metrics server
	metrics := lib.NewMetricsServer(config.MetricsConfig, l)
	// create a new database object from the config
	db, err := store.New(config, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	// create a new instance of the application, applying genesis on an empty ledger
	app, err := controller.New(config, db, metrics, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	l.Infof("Serving %s", app.String())
	// initialize the rpc server
	rpcServer := rpc.NewServer(app, config, l)
	// start the application and the metrics server
	app.Start()
	// run the rpc servers until a kill signal is received
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rpcServer.Start(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		l.Info("Exit command received")
		return nil
	})
	if e := g.Wait(); e != nil {
		l.Error(e.Error())
	}
	// gracefully stop the app
	app.Stop()
}

// InitializeDataDirectory() populates the data directory with configuration and genesis files if missing
func InitializeDataDirectory(dataDirPath, owner string, log lib.LoggerI) (c lib.Config) {
	// make the data dir if missing
	if err := os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		log.Fatal(err.Error())
	}
	// make the config.json file if missing
	configFilePath := filepath.Join(dataDirPath, lib.ConfigFilePath)
	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		log.Infof("Creating %s file", lib.ConfigFilePath)
		if err = lib.DefaultConfig().WriteToFile(configFilePath); err != nil {
			log.Fatal(err.Error())
		}
	}
	// load the config object
	c, err := lib.NewConfigFromFile(configFilePath)
	if err != nil {
		log.Fatal(err.Error())
	}
	// set the data-directory
	c.DataDirPath = dataDirPath
	// create the genesis file if missing
	genesisFilePath := filepath.Join(dataDirPath, lib.GenesisFilePath)
	if _, err = os.Stat(genesisFilePath); errors.Is(err, os.ErrNotExist) {
		log.Infof("Creating %s file", lib.GenesisFilePath)
		if e := WriteDefaultGenesisFile(c, owner); e != nil {
			log.Fatal(e.Error())
		}
	}
	return
}

// WriteDefaultGenesisFile() funds the owner with the currency and the reference asset of the default configuration
func WriteDefaultGenesisFile(c lib.Config, owner string) lib.ErrorI {
	if owner == "" {
		owner = "sys"
	}
	params := fsm.DefaultParams(owner)
	amount := decimal.NewFromInt(1000000)
	j := &fsm.GenesisState{
		Owner:  owner,
		Params: params,
		Assets: []*fsm.GenesisAsset{
			{Name: c.CurrencyAsset, Balances: []*fsm.GenesisBalance{{Account: owner, Amount: amount}}},
			{Name: params.ReferenceAsset, Balances: []*fsm.GenesisBalance{{Account: owner, Amount: amount}}},
		},
	}
	return lib.SaveJSONToFile(j, c.DataDirPath, lib.GenesisFilePath)
}

func writeToConsole(a any, err error) {
	if err != nil {
		l.Fatal(err.Error())
	}
	switch x := a.(type) {
	case int, uint32, uint64:
		p := message.NewPrinter(language.English)
		if _, err := p.Printf("%d\n", a); err != nil {
			l.Fatal(err.Error())
		}
	case decimal.Decimal:
		fmt.Println(x.String())
	case string, *string:
		fmt.Println(a)
	default:
		s, err := lib.MarshalJSONIndentString(a)
		if err != nil {
			l.Fatal(err.Error())
		}
		fmt.Println(s)
	}
}
