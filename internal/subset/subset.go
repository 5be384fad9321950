// Package subset orchestrates one subsetting run: resolve the spatial and
// temporal filters, search CMR for matching granules, then order and download
// the subsetted data from NSIDC.
package subset

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nsidc-tools/nsidc-subset/internal/cmr"
	"github.com/nsidc-tools/nsidc-subset/internal/nsidc"
)

// DefaultRequestType is the MIME type used to select retrievable data links
// from CMR granule entries.
const DefaultRequestType = "application/x-hdf5"

// Options are the per-run settings assembled from CLI flags.
type Options struct {
	Products    []string
	Directory   string
	Version     string
	BBox        string   // raw --bbox value, "lonmin,latmin,lonmax,latmax"
	PolygonPath string   // --polygon file
	TimeRange   []string // empty or [start, end]
	RequestType string   // MIME type filter for granule links
	Format      string   // output conversion format
	List        bool     // write an index of matching granules
	Unzip       bool     // extract order pages instead of saving zips
	Mode        os.FileMode
	PageSize    int
}

// Runner executes subsetting runs.
type Runner struct {
	cmr    *cmr.Client
	nsidc  *nsidc.Client
	logger *slog.Logger
}

// NewRunner creates a Runner on top of the given API clients.
func NewRunner(cmrClient *cmr.Client, nsidcClient *nsidc.Client, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cmr: cmrClient, nsidc: nsidcClient, logger: logger}
}

// Run performs one run over every requested product. No output is produced
// for a product whose filters fail to resolve; resolution errors abort the
// run before any request is made.
func (r *Runner) Run(ctx context.Context, options *Options) error {
	// Defaults are resolved into a copy; the caller's options stay untouched.
	opts := *options
	if opts.RequestType == "" {
		opts.RequestType = DefaultRequestType
	}
	if opts.Mode == 0 {
		opts.Mode = 0o775
	}
	if opts.PageSize <= 0 {
		opts.PageSize = nsidc.DefaultPageSize
	}

	filter, err := ResolveSpatial(opts.BBox, opts.PolygonPath)
	if err != nil {
		return err
	}

	var temporal string
	if len(opts.TimeRange) == 2 {
		temporal, err = FormatTemporal(opts.TimeRange[0], opts.TimeRange[1])
		if err != nil {
			return err
		}
	}

	if err := cmr.ValidateVersion(opts.Version); err != nil {
		return err
	}

	if err := os.MkdirAll(opts.Directory, 0o775); err != nil {
		return fmt.Errorf("create output directory %s: %w", opts.Directory, err)
	}

	for _, product := range opts.Products {
		if err := r.runProduct(ctx, product, filter, temporal, &opts); err != nil {
			return fmt.Errorf("product %s: %w", product, err)
		}
	}
	return nil
}

func (r *Runner) runProduct(ctx context.Context, product string, filter *SpatialFilter, temporal string, opts *Options) error {
	searchParams := &cmr.SearchParams{
		ShortName: product,
		Version:   opts.Version,
		Temporal:  temporal,
		PageSize:  opts.PageSize,
	}
	if filter != nil {
		searchParams.BoundingBox = filter.BoundingBox.String()
	}

	entries, err := r.cmr.SearchAll(ctx, searchParams)
	if err != nil {
		return err
	}
	granules := cmr.FilterLinks(entries, opts.RequestType)

	r.logger.InfoContext(ctx, "granule search completed",
		slog.String("product", product),
		slog.Int("entries", len(entries)),
		slog.Int("granules", len(granules)),
	)

	if opts.List {
		if err := writeIndex(filepath.Join(opts.Directory, "index.txt"), granules); err != nil {
			return err
		}
		// Listing replaces downloading.
		return nil
	}
	if len(granules) == 0 {
		r.logger.WarnContext(ctx, "no granules matched, skipping order",
			slog.String("product", product),
		)
		return nil
	}

	orderParams := &nsidc.OrderParams{
		ShortName: product,
		Version:   opts.Version,
		Temporal:  temporal,
		Format:    opts.Format,
		PageSize:  opts.PageSize,
	}
	if filter != nil {
		orderParams.BoundingBox = filter.BoundingBox.String()
		if filter.FromPolygon {
			orderParams.Polygon = filter.Polygon
		} else {
			orderParams.BBox = filter.BoundingBox.String()
		}
	}

	pageCount := (len(granules) + opts.PageSize - 1) / opts.PageSize
	stamp := time.Now().Format("2006-01-02T15-04-05")

	for page := 1; page <= pageCount; page++ {
		orderParams.PageNum = page
		suffix := ""
		if pageCount > 1 {
			suffix = fmt.Sprintf("_p%d", page)
		}
		if opts.Unzip {
			destDir := filepath.Join(opts.Directory, fmt.Sprintf("%s_%s%s", product, stamp, suffix))
			files, err := r.nsidc.DownloadUnzipped(ctx, orderParams, destDir, opts.Mode)
			if err != nil {
				return err
			}
			r.logger.InfoContext(ctx, "order page extracted",
				slog.Int("page", page),
				slog.Int("files", len(files)),
				slog.String("dir", destDir),
			)
		} else {
			destPath := filepath.Join(opts.Directory, fmt.Sprintf("%s_%s%s.zip", product, stamp, suffix))
			if err := r.nsidc.DownloadZip(ctx, orderParams, destPath, opts.Mode); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeIndex writes the granule file names, one per line.
func writeIndex(path string, granuleURLs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	for _, name := range cmr.Basenames(granuleURLs) {
		fmt.Fprintln(w, name)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
