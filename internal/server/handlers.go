package server

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"productapi/internal/models"
	"productapi/internal/pricing"
)

const goldSourceHeader = "X-Gold-Price-Source"

var exportHeader = []string{"name", "popularity_score", "weight", "price", "popularity_rating"}

func (s *Server) GetProducts(w http.ResponseWriter, r *http.Request) {
	products := s.pricedProducts(w, r)
	writeJSON(w, http.StatusOK, products)
}

// pricedProducts fetches the gold price and prices a fresh copy of the
// catalog. A fallback price is logged and reported in a response header.
func (s *Server) pricedProducts(w http.ResponseWriter, r *http.Request) []models.Product {
	quote := s.prices.Fetch(r.Context())
	if quote.Fallback() {
		log.Printf("Using fallback gold price %.2f: %v", quote.PricePerGram, quote.Err)
	}
	w.Header().Set(goldSourceHeader, string(quote.Source))

	return pricing.Apply(s.catalog.Products(), quote.PricePerGram)
}

func (s *Server) ExportProducts(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "zip"
	}
	if format != "zip" && format != "xlsx" {
		http.Error(w, "Unsupported export format: "+format, http.StatusBadRequest)
		return
	}

	products := s.pricedProducts(w, r)

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "zip":
		data, err = buildCSVZip(products)
		contentType, filename = "application/zip", "prices.zip"
	case "xlsx":
		data, err = buildXLSX(products)
		contentType, filename = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "prices.xlsx"
	}
	if err != nil {
		log.Printf("Error building %s export: %v", format, err)
		http.Error(w, "Failed to build export: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to send %s export: %v", format, err)
	}
}

func exportRow(p models.Product) []string {
	return []string{
		p.Name,
		strconv.FormatFloat(p.PopularityScore, 'f', -1, 64),
		strconv.FormatFloat(p.Weight, 'f', -1, 64),
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		strconv.FormatFloat(p.PopularityRating, 'f', 1, 64),
	}
}

// buildCSVZip returns a zip archive holding data.csv.
func buildCSVZip(products []models.Product) ([]byte, error) {
	var zipBuffer bytes.Buffer
	zipWriter := zip.NewWriter(&zipBuffer)

	csvFile, err := zipWriter.Create("data.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create csv in zip: %w", err)
	}

	csvWriter := csv.NewWriter(csvFile)
	if err := csvWriter.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range products {
		if err := csvWriter.Write(exportRow(p)); err != nil {
			return nil, fmt.Errorf("failed to write csv row for %q: %w", p.Name, err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip: %w", err)
	}
	return zipBuffer.Bytes(), nil
}

const exportSheet = "Products"

func buildXLSX(products []models.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{p.Name, p.PopularityScore, p.Weight, p.Price, p.PopularityRating}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row for %q: %w", p.Name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
