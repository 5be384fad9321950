package nsidc

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DownloadZip fetches one order page and writes the zip archive to destPath
// with the given permissions.
func (c *Client) DownloadZip(ctx context.Context, params *OrderParams, destPath string, mode os.FileMode) error {
	body, err := c.FetchPage(ctx, params)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", destPath, err)
	}

	c.logger.InfoContext(ctx, "saved order page",
		slog.String("file", destPath),
		slog.Int("page", params.PageNum),
	)
	return nil
}

// DownloadUnzipped fetches one order page and extracts each archive member
// flat into destDir with the given permissions, returning the extracted file
// paths. Member paths are reduced to their basenames, which also guards
// against zip path traversal.
func (c *Client) DownloadUnzipped(ctx context.Context, params *OrderParams, destDir string, mode os.FileMode) ([]string, error) {
	body, err := c.FetchPage(ctx, params)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	// Order pages are modest; the zip directory needs random access.
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read order page: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open order page zip: %w", err)
	}

	if err := os.MkdirAll(destDir, 0o775); err != nil {
		return nil, fmt.Errorf("create %s: %w", destDir, err)
	}

	var extracted []string
	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		dest := filepath.Join(destDir, filepath.Base(member.Name))
		if err := extractMember(member, dest, mode); err != nil {
			return nil, fmt.Errorf("extract %s: %w", member.Name, err)
		}
		c.logger.InfoContext(ctx, "extracted granule file",
			slog.String("file", dest),
		)
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractMember(member *zip.File, dest string, mode os.FileMode) error {
	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
