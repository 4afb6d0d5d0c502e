package service

import (
	"context"

	"github.com/tanwartailor/tailor-api/internal/domain/repository"
)

// DashboardService aggregates figures for the admin dashboard
type DashboardService struct {
	contactRepo repository.ContactRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(contactRepo repository.ContactRepository) *DashboardService {
	return &DashboardService{contactRepo: contactRepo}
}

// AdminStats is the admin dashboard summary
type AdminStats struct {
	TotalContacts  int64  `json:"total_contacts"`
	UnreadContacts int64  `json:"unread_contacts"`
	TodayContacts  int64  `json:"today_contacts"`
	SystemStatus   string `json:"system_status"`
}

// GetAdminStats returns the dashboard summary
func (s *DashboardService) GetAdminStats(ctx context.Context) (*AdminStats, error) {
	contactStats, err := s.contactRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalContacts:  contactStats.TotalContacts,
		UnreadContacts: contactStats.UnreadContacts,
		TodayContacts:  contactStats.TodayContacts,
		SystemStatus:   "active",
	}, nil
}
