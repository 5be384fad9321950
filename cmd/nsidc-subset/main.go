// nsidc-subset orders subsetted NSIDC altimetry data through NASA Earthdata.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nsidc-tools/nsidc-subset/internal/cmr"
	"github.com/nsidc-tools/nsidc-subset/internal/config"
	"github.com/nsidc-tools/nsidc-subset/internal/earthdata"
	"github.com/nsidc-tools/nsidc-subset/internal/nsidc"
	"github.com/nsidc-tools/nsidc-subset/internal/products"
	"github.com/nsidc-tools/nsidc-subset/internal/subset"
)

var (
	flagDirectory string
	flagUser      string
	flagPassword  string
	flagNetrc     string
	flagVersion   string
	flagBBox      string
	flagPolygon   string
	flagTime      []string
	flagType      string
	flagFormat    string
	flagList      bool
	flagUnzip     bool
	flagMode      string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "nsidc-subset PRODUCT [PRODUCT...]",
	Short: "Acquire subsetted altimetry data from the NSIDC API",
	Long: `nsidc-subset queries NASA's Common Metadata Repository for granules of
NSIDC altimetry products (ICESat/GLAS, Operation IceBridge, ICESat-2/ATLAS)
over a bounding box, polygon region and time range, then orders, downloads
and optionally unzips the subsetted data from the NSIDC subsetting service.

Requires NASA Earthdata Login credentials (https://urs.earthdata.nasa.gov),
supplied via flags, EARTHDATA_USERNAME/EARTHDATA_PASSWORD, or a .netrc entry.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()

	rootCmd.Flags().StringVarP(&flagDirectory, "directory", "D", cwd, "Working data directory")
	rootCmd.Flags().StringVarP(&flagUser, "user", "U", "", "Username for NASA Earthdata Login")
	rootCmd.Flags().StringVarP(&flagPassword, "password", "W", "", "Password for NASA Earthdata Login")
	rootCmd.Flags().StringVarP(&flagNetrc, "netrc", "N", filepath.Join(home, ".netrc"), "Path to .netrc file for authentication")
	rootCmd.Flags().StringVar(&flagVersion, "version", "", "Version of the dataset to use")
	rootCmd.Flags().StringVarP(&flagBBox, "bbox", "B", "", "Bounding box: lonmin,latmin,lonmax,latmax")
	rootCmd.Flags().StringVarP(&flagPolygon, "polygon", "P", "", "Georeferenced file containing a set of polygons; file[id1,id2] selects specific features")
	rootCmd.Flags().StringSliceVarP(&flagTime, "time", "T", nil, "Time range: start,end")
	rootCmd.Flags().StringVarP(&flagType, "type", "R", subset.DefaultRequestType, "CMR request type for filtering results")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "F", "", "Convert to output data format (TABULAR_ASCII, NetCDF4)")
	rootCmd.Flags().BoolVarP(&flagList, "list", "L", false, "Create an index file of CMR query granules")
	rootCmd.Flags().BoolVarP(&flagUnzip, "unzip", "Z", false, "Unzip dataset from NSIDC subsetting service")
	rootCmd.Flags().StringVarP(&flagMode, "mode", "M", "775", "Permissions mode of output files (octal)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output of processing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	if err := products.Validate(args); err != nil {
		return err
	}
	if len(flagTime) != 0 && len(flagTime) != 2 {
		return fmt.Errorf("--time wants exactly 2 values (start,end), got %d", len(flagTime))
	}
	modeVal, err := strconv.ParseUint(flagMode, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid --mode %q: %w", flagMode, err)
	}

	if flagUser != "" {
		cfg.Earthdata.Username = flagUser
	}
	if flagPassword != "" {
		cfg.Earthdata.Password = flagPassword
	}

	creds, err := earthdata.ResolveCredentials(
		cfg.Earthdata.Username, cfg.Earthdata.Password, flagNetrc, cfg.Earthdata.Host)
	if err != nil {
		return err
	}
	httpClient, err := earthdata.NewHTTPClient(creds, cfg.Earthdata.Host, cfg.NSIDC.Timeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := earthdata.CheckConnection(ctx, httpClient, cfg.NSIDC.BaseURL); err != nil {
		return err
	}

	cmrClient := cmr.NewClient(cfg.CMR.BaseURL, cfg.CMR.Provider, cfg.CMR.Timeout, httpClient).WithLogger(logger)
	nsidcClient := nsidc.NewClient(cfg.NSIDC.BaseURL, httpClient).WithLogger(logger)
	runner := subset.NewRunner(cmrClient, nsidcClient, logger)

	opts := &subset.Options{
		Products:    args,
		Directory:   flagDirectory,
		Version:     flagVersion,
		BBox:        flagBBox,
		PolygonPath: flagPolygon,
		TimeRange:   flagTime,
		RequestType: flagType,
		Format:      flagFormat,
		List:        flagList,
		Unzip:       flagUnzip,
		Mode:        os.FileMode(modeVal),
		PageSize:    cfg.CMR.PageSize,
	}
	return runner.Run(ctx, opts)
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
