// =============================================================================
// Travel Voucher Generator - Travel Pack Assembly
// =============================================================================
//
// Assembles rendered voucher documents into the final travel pack. Vouchers
// are sorted into the conventional reading order (hotels first, golf last,
// chronological within a category), converted to PDF with LibreOffice and
// merged into a single document. When no converter is available the pack
// can instead be shipped as a zip archive of the source documents, with
// index prefixes preserving the order.
//
// =============================================================================

package pdfmerge

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"

	"github.com/PierreFinestTravel/Vouchersystem/internal/types"
)

// sofficePaths are the LibreOffice install locations probed before falling
// back to PATH lookup.
var sofficePaths = []string{
	"/usr/bin/soffice",
	"/usr/local/bin/soffice",
	"/opt/libreoffice/program/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	`C:\Program Files\LibreOffice\program\soffice.exe`,
}

// =============================================================================
// ORDERING
// =============================================================================

// Sort orders vouchers into travel pack reading order: by category priority
// (hotel, transfer, car rental, activity, restaurant, golf), then by date.
// The sort is stable so equal keys keep their generation order.
func Sort(docs []types.RenderedDoc) []types.RenderedDoc {
	sorted := make([]types.RenderedDoc, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if pi, pj := sorted[i].Kind.Priority(), sorted[j].Kind.Priority(); pi != pj {
			return pi < pj
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// =============================================================================
// PDF CONVERSION
// =============================================================================

// FindSoffice locates the LibreOffice binary. An explicitly configured path
// wins; otherwise the known install locations are probed, then PATH.
func FindSoffice(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("configured soffice path %s: %w", configured, err)
		}
		return configured, nil
	}

	for _, p := range sofficePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	for _, name := range []string{"soffice", "libreoffice"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("libreoffice not found; install it or set soffice_path")
}

// ConvertToPDF converts one document to PDF in outDir and returns the PDF
// path. The conversion is bounded by timeout.
func ConvertToPDF(ctx context.Context, soffice, docPath, outDir string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, soffice,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, docPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("pdf conversion of %s timed out", filepath.Base(docPath))
		}
		return "", fmt.Errorf("pdf conversion of %s failed: %w: %s",
			filepath.Base(docPath), err, strings.TrimSpace(string(out)))
	}

	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("converter produced no output for %s", filepath.Base(docPath))
	}
	return pdfPath, nil
}

// MergePDFs merges the given PDFs, in order, into outPath.
func MergePDFs(paths []string, outPath string) error {
	if len(paths) == 0 {
		return fmt.Errorf("nothing to merge")
	}
	if err := api.MergeCreateFile(paths, outPath, false, nil); err != nil {
		return fmt.Errorf("failed to merge travel pack: %w", err)
	}
	return nil
}

// =============================================================================
// PACKAGING
// =============================================================================

// BuildPDF converts every voucher to PDF and merges them, in travel pack
// order, into a single document at outPath.
func BuildPDF(ctx context.Context, docs []types.RenderedDoc, workDir, outPath, soffice string, timeout time.Duration) error {
	sorted := Sort(docs)

	pdfDir := filepath.Join(workDir, "pdf")
	if err := os.MkdirAll(pdfDir, 0755); err != nil {
		return fmt.Errorf("failed to create pdf directory: %w", err)
	}

	paths := make([]string, 0, len(sorted))
	for _, doc := range sorted {
		pdf, err := ConvertToPDF(ctx, soffice, doc.Path, pdfDir, timeout)
		if err != nil {
			return err
		}
		log.Debug().Str("pdf", filepath.Base(pdf)).Msg("voucher converted")
		paths = append(paths, pdf)
	}

	if err := MergePDFs(paths, outPath); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Int("vouchers", len(paths)).Msg("travel pack merged")
	return nil
}

// BuildZip archives the voucher documents, in travel pack order, into a zip
// at outPath. Entries carry a two-digit index prefix so any extraction
// preserves the reading order.
func BuildZip(docs []types.RenderedDoc, outPath string) error {
	sorted := Sort(docs)
	if len(sorted) == 0 {
		return fmt.Errorf("nothing to archive")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for i, doc := range sorted {
		name := fmt.Sprintf("%02d_%s", i+1, filepath.Base(doc.Path))
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		src, err := os.Open(doc.Path)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to read voucher %s: %w", doc.Path, err)
		}
		_, err = io.Copy(w, src)
		src.Close()
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to archive %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}

	log.Info().Str("path", outPath).Int("vouchers", len(sorted)).Msg("travel pack archived")
	return nil
}
