package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"time"

	"fillratedash/internal/models"
)

// gapConditions selects the rows the dashboard cares about: under-filled
// orders with a usable state and plant. "0" is a legacy placeholder value
// in the source data, not a real state/plant.
const gapConditions = `fill_rate_percent < 95
		AND fill_rate_percent IS NOT NULL
		AND state IS NOT NULL AND state <> '' AND state <> '0'
		AND plant_name IS NOT NULL AND plant_name <> '' AND plant_name <> '0'`

const recordColumns = `id, po_no, material, material_description, po_date, delivery_date,
		uom, po_quantity, sales_quantity, fill_rate_percent,
		state, plant_name, sales_district, cust_group, processing_date`

type FillRateRepository struct {
	db *sql.DB
}

func NewFillRateRepository(db *sql.DB) *FillRateRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &FillRateRepository{db: db}
}

func (r *FillRateRepository) Stats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	if err := r.db.QueryRow(`SELECT COUNT(*) FROM po_fill_rates`).Scan(&stats.TotalRecords); err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}

	gapCount := `SELECT COUNT(*) FROM po_fill_rates WHERE ` + gapConditions
	if err := r.db.QueryRow(gapCount).Scan(&stats.LowFillRateCount); err != nil {
		return nil, fmt.Errorf("count gap records: %w", err)
	}
	// Every gap row can carry feedback.
	stats.NeedsFeedback = stats.LowFillRateCount

	var avg sql.NullFloat64
	if err := r.db.QueryRow(`SELECT AVG(fill_rate_percent) FROM po_fill_rates WHERE fill_rate_percent > 0`).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average fill rate: %w", err)
	}
	if avg.Valid {
		stats.AverageFillRate = math.Round(avg.Float64*100) / 100
	}

	return stats, nil
}

func (r *FillRateRepository) ListGaps() ([]models.FillRateRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM po_fill_rates WHERE ` + gapConditions +
		` ORDER BY fill_rate_percent ASC`
	return r.queryRecords(query)
}

// FilterGaps builds the WHERE clause dynamically from the non-empty filter
// fields, always parameterized.
func (r *FillRateRepository) FilterGaps(f models.GapFilter) ([]models.FillRateRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM po_fill_rates WHERE ` + gapConditions
	args := []interface{}{}
	i := 1

	if f.State != "" {
		query += fmt.Sprintf(" AND state = $%d", i)
		args = append(args, f.State)
		i++
	}
	if f.Plant != "" {
		query += fmt.Sprintf(" AND plant_name = $%d", i)
		args = append(args, f.Plant)
		i++
	}
	if f.Material != "" {
		query += fmt.Sprintf(" AND material_description = $%d", i)
		args = append(args, f.Material)
		i++
	}
	if f.DateFrom != "" {
		from, err := time.Parse("2006-01-02", f.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("bad date_from: %w", err)
		}
		query += fmt.Sprintf(" AND processing_date >= $%d", i)
		args = append(args, from)
		i++
	}
	if f.DateTo != "" {
		to, err := time.Parse("2006-01-02", f.DateTo)
		if err != nil {
			return nil, fmt.Errorf("bad date_to: %w", err)
		}
		// inclusive of the whole day
		query += fmt.Sprintf(" AND processing_date < $%d", i)
		args = append(args, to.AddDate(0, 0, 1))
		i++
	}

	query += " ORDER BY fill_rate_percent ASC"
	return r.queryRecords(query, args...)
}

func (r *FillRateRepository) FilterOptions() (*models.FilterOptions, error) {
	opts := &models.FilterOptions{
		States:        []string{},
		PlantsByState: map[string][]models.PlantCount{},
		Materials:     []string{},
	}

	rows, err := r.db.Query(`SELECT DISTINCT state FROM po_fill_rates WHERE ` + gapConditions + ` ORDER BY state`)
	if err != nil {
		return nil, fmt.Errorf("states: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		opts.States = append(opts.States, s)
	}

	plantRows, err := r.db.Query(`SELECT state, plant_name, COUNT(*) FROM po_fill_rates WHERE ` +
		gapConditions + ` GROUP BY state, plant_name ORDER BY state, plant_name`)
	if err != nil {
		return nil, fmt.Errorf("plants: %w", err)
	}
	defer plantRows.Close()
	for plantRows.Next() {
		var state string
		var pc models.PlantCount
		if err := plantRows.Scan(&state, &pc.Name, &pc.Count); err != nil {
			return nil, err
		}
		opts.PlantsByState[state] = append(opts.PlantsByState[state], pc)
	}

	matRows, err := r.db.Query(`SELECT DISTINCT material_description FROM po_fill_rates WHERE ` +
		gapConditions + ` AND material_description IS NOT NULL AND material_description <> '' ORDER BY material_description`)
	if err != nil {
		return nil, fmt.Errorf("materials: %w", err)
	}
	defer matRows.Close()
	for matRows.Next() {
		var m string
		if err := matRows.Scan(&m); err != nil {
			return nil, err
		}
		opts.Materials = append(opts.Materials, m)
	}

	return opts, nil
}

func (r *FillRateRepository) queryRecords(query string, args ...interface{}) ([]models.FillRateRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query fill rate records: %w", err)
	}
	defer rows.Close()

	out := []models.FillRateRecord{}
	for rows.Next() {
		var rec models.FillRateRecord
		var poNo, material, matDesc, uom, state, plant, district, custGroup sql.NullString
		var poQty, salesQty, fillRate sql.NullFloat64
		var poDate, deliveryDate, processingDate sql.NullTime

		if err := rows.Scan(
			&rec.ID, &poNo, &material, &matDesc, &poDate, &deliveryDate,
			&uom, &poQty, &salesQty, &fillRate,
			&state, &plant, &district, &custGroup, &processingDate,
		); err != nil {
			return nil, fmt.Errorf("scan fill rate record: %w", err)
		}

		rec.PONo = poNo.String
		rec.Material = material.String
		rec.MaterialDescription = matDesc.String
		rec.UOM = uom.String
		rec.POQuantity = poQty.Float64
		rec.SalesQuantity = salesQty.Float64
		rec.FillRatePercent = fillRate.Float64
		rec.State = state.String
		rec.PlantName = plant.String
		rec.SalesDistrict = district.String
		rec.CustGroup = custGroup.String
		rec.PODate = formatDate(poDate)
		rec.DeliveryDate = formatDate(deliveryDate)
		rec.ProcessingDate = formatDate(processingDate)

		out = append(out, rec)
	}
	return out, rows.Err()
}

// formatDate renders a nullable date as YYYY-MM-DD. The source system used
// 1900-01-01 as a "no date" sentinel; those render empty too.
func formatDate(t sql.NullTime) string {
	if !t.Valid || t.Time.Year() <= 1900 {
		return ""
	}
	return t.Time.Format("2006-01-02")
}
