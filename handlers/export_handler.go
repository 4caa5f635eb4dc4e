package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportProspects streams the authenticated salesperson's prospects as
// an XLSX attachment.
func ExportProspects(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var prospects []models.Prospect
	err = database.GetDB().Preload("Category").
		Where("salesperson_id = ?", salespersonID).
		Order("created_at DESC").
		Find(&prospects).Error
	if err != nil {
		logrus.Errorf("failed to load prospects for export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to export prospects",
		})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Code", "Customer", "Email", "Phone", "Address", "Category", "Status", "Converted At", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, p := range prospects {
		row := i + 2
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		convertedAt := ""
		if p.ConvertedAt != nil {
			convertedAt = p.ConvertedAt.Format("2006-01-02 15:04:05")
		}
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), p.Code)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), p.CustomerName)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), p.CustomerEmail)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), p.CustomerNumber)
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), p.Address)
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), categoryName)
		f.SetCellValue(sheet, "G"+fmt.Sprint(row), string(p.Status))
		f.SetCellValue(sheet, "H"+fmt.Sprint(row), convertedAt)
		f.SetCellValue(sheet, "I"+fmt.Sprint(row), p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return sendWorkbook(c, f, fmt.Sprintf("prospects_%s.xlsx", time.Now().Format("20060102")))
}

// ExportLedger streams the authenticated salesperson's points ledger
// as an XLSX attachment, oldest entry first so the running total reads
// top to bottom.
func ExportLedger(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var entries []models.PointsLedgerEntry
	err = database.GetDB().
		Where("salesperson_id = ?", salespersonID).
		Order("entry_date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		logrus.Errorf("failed to load ledger for export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to export ledger",
		})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Kind")
	f.SetCellValue(sheet, "C1", "Points")
	f.SetCellValue(sheet, "D1", "Accumulated")
	f.SetCellValue(sheet, "E1", "Description")

	for i, entry := range entries {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), entry.EntryDate.Format("2006-01-02"))
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), string(entry.Kind))
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), entry.PointsEarned)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), entry.AccumulatedPoints)
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), entry.Description)
	}

	return sendWorkbook(c, f, fmt.Sprintf("points_ledger_%s.xlsx", time.Now().Format("20060102")))
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		logrus.Errorf("failed to write workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to build export file",
		})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(buf.Bytes())
}
