package serve

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	cmdUtil "github.com/notaslab/notas/cmd/util"
	"github.com/notaslab/notas/lib/catalog"
	"github.com/notaslab/notas/lib/roster"
	"github.com/notaslab/notas/lib/store"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/nrc"
	"github.com/notaslab/notas/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the record server",
		Long:    `Start the record server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is NOTAS_<flag> (e.g. NOTAS_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, cmdUtil.DefaultRecordEndpoint, cmdUtil.WrapString("The address on which the record server will listen"))

	key = "mode"
	ServeCmd.PersistentFlags().String(key, "concurrent", cmdUtil.WrapString("Connection scheduling mode: concurrent (one goroutine per connection) or sequential (connections handled one at a time)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int(key, 5, cmdUtil.WrapString("Per-connection read/write timeout in seconds (0 disables)"))

	key = "grades-file"
	ServeCmd.PersistentFlags().String(key, "calificaciones.csv", cmdUtil.WrapString("Path of the grades CSV file (created with a header row if missing)"))

	key = "roster-file"
	ServeCmd.PersistentFlags().String(key, "estudiantes.csv", cmdUtil.WrapString("Path of the student roster CSV file (created with a header row if missing)"))

	key = "nrc-endpoint"
	ServeCmd.PersistentFlags().String(key, "localhost:12346", cmdUtil.WrapString("The address of the NRC catalog service used to validate subjects on insert"))

	key = "nrc-timeout"
	ServeCmd.PersistentFlags().Int(key, 5, cmdUtil.WrapString("Timeout in seconds for one NRC catalog round trip"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional address for the Prometheus metrics HTTP endpoint (e.g. localhost:9100); empty disables it"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts it to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	mode, err := common.ParseMode(viper.GetString("mode"))
	if err != nil {
		return err
	}

	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.Mode = mode
	serveCmdConfig.TimeoutSecond = viper.GetInt("timeout")
	serveCmdConfig.GradesPath = viper.GetString("grades-file")
	serveCmdConfig.RosterPath = viper.GetString("roster-file")
	serveCmdConfig.NRCEndpoint = viper.GetString("nrc-endpoint")
	serveCmdConfig.NRCTimeoutSecond = viper.GetInt("nrc-timeout")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	return nil
}

// run starts the record server
func run(_ *cobra.Command, _ []string) error {
	common.InitLoggers(serveCmdConfig.LogLevel)
	server.Logger.Infof("starting record server with configuration: %s", serveCmdConfig.String())

	// The roster file is an input; make sure it at least exists so
	// operators can fill it in.
	rosterIx := roster.NewIndex(serveCmdConfig.RosterPath)
	if err := rosterIx.Ensure(); err != nil {
		return fmt.Errorf("failed to prepare roster file: %w", err)
	}

	var catalogClient catalog.Client = nrc.NewClient(common.ClientConfig{
		Endpoint:      serveCmdConfig.NRCEndpoint,
		TimeoutSecond: serveCmdConfig.NRCTimeoutSecond,
	})

	dispatcher := server.NewDispatcher(
		store.New(store.NewCSVSource(serveCmdConfig.GradesPath)),
		rosterIx,
		catalogClient,
	)
	srv := server.NewServer(*serveCmdConfig, dispatcher)

	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	if serveCmdConfig.MetricsEndpoint != "" {
		go serveMetrics(serveCmdConfig.MetricsEndpoint)
	}

	return srv.Serve(ln)
}

// serveMetrics exposes the process metrics in Prometheus text format.
func serveMetrics(endpoint string) {
	http.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	server.Logger.Infof("metrics endpoint listening on %s", endpoint)
	if err := http.ListenAndServe(endpoint, nil); err != nil {
		server.Logger.Errorf("metrics endpoint failed: %v", err)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("notas")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
