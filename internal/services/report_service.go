package services

import (
	"fillratedash/internal/models"
	"fillratedash/internal/repositories"
)

type ReportService struct {
	Repo *repositories.FillRateRepository
}

func NewReportService(repo *repositories.FillRateRepository) *ReportService {
	return &ReportService{Repo: repo}
}

func (s *ReportService) Stats() (*models.DashboardStats, error) {
	return s.Repo.Stats()
}

func (s *ReportService) ListGaps() ([]models.FillRateRecord, error) {
	return s.Repo.ListGaps()
}

func (s *ReportService) FilterGaps(f models.GapFilter) ([]models.FillRateRecord, error) {
	return s.Repo.FilterGaps(f)
}

func (s *ReportService) FilterOptions() (*models.FilterOptions, error) {
	return s.Repo.FilterOptions()
}
