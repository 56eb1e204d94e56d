package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"FinVault/internal/domain/models"
	domrepo "FinVault/internal/domain/repository"
	applogger "FinVault/pkg/logger"
	"FinVault/pkg/util"
)

// ImportSpec is a resolved import source: the price header is already known.
type ImportSpec struct {
	Instrument  string
	File        string
	DateColumn  string
	DateLayout  string
	PriceHeader string
}

type ImportResult struct {
	Inserted int `json:"inserted"`
	Present  int `json:"present"`
	Invalid  int `json:"invalid"`
}

// Importer bulk loads historical CSV prices through the same idempotent
// upsert as the daily run.
type Importer struct {
	catalog *models.Catalog
	store   domrepo.PriceStore
	l       *applogger.Logger
}

func NewImporter(catalog *models.Catalog, store domrepo.PriceStore, l *applogger.Logger) *Importer {
	return &Importer{catalog: catalog, store: store, l: l}
}

func (im *Importer) ImportFile(ctx context.Context, spec ImportSpec) (ImportResult, error) {
	f, err := os.Open(spec.File)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open %s: %w", spec.File, err)
	}
	defer f.Close()
	return im.Import(ctx, spec, f)
}

// Import reads a CSV with a header row. Rows with an unparseable date or
// price are counted as invalid and skipped; a storage error stops the import.
func (im *Importer) Import(ctx context.Context, spec ImportSpec, r io.Reader) (ImportResult, error) {
	var res ImportResult
	if _, ok := im.catalog.Get(spec.Instrument); !ok {
		return res, fmt.Errorf("%w: %s", ErrUnknownInstrument, spec.Instrument)
	}
	layout := spec.DateLayout
	if layout == "" {
		layout = util.DateLayout
	}
	dateCol := spec.DateColumn
	if dateCol == "" {
		dateCol = "date"
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return res, fmt.Errorf("read header of %s: %w", spec.File, err)
	}
	di, pi := columnIndex(header, dateCol), columnIndex(header, spec.PriceHeader)
	if di < 0 {
		return res, fmt.Errorf("%s: date column %q not found", spec.File, dateCol)
	}
	if pi < 0 {
		return res, fmt.Errorf("%s: price column %q not found", spec.File, spec.PriceHeader)
	}

	log := im.l.With(applogger.String("instrument", spec.Instrument), applogger.String("file", spec.File))
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			res.Invalid++
			log.Warn("unreadable csv row", applogger.Int("line", line), applogger.Error(err))
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if di >= len(row) || pi >= len(row) {
			res.Invalid++
			continue
		}

		d, err := util.ParseDateLayout(layout, strings.TrimSpace(row[di]))
		if err != nil {
			res.Invalid++
			log.Debug("invalid date", applogger.Int("line", line), applogger.String("value", row[di]))
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[pi]), 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			res.Invalid++
			log.Debug("invalid price", applogger.Int("line", line), applogger.String("value", row[pi]))
			continue
		}

		rec := models.PriceRecord{InstrumentKey: spec.Instrument, Date: d, Price: util.Round(price, ratePlaces)}
		out, err := im.store.Upsert(ctx, rec)
		if err != nil {
			return res, fmt.Errorf("%s line %d: %w", spec.File, line, err)
		}
		if out == models.UpsertAlreadyPresent {
			res.Present++
		} else {
			res.Inserted++
		}
	}

	log.Info("import finished",
		applogger.Int("inserted", res.Inserted),
		applogger.Int("present", res.Present),
		applogger.Int("invalid", res.Invalid),
	)
	return res, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
			return i
		}
	}
	return -1
}
