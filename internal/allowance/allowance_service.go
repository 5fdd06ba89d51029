package allowance

import (
	"context"
	"errors"

	allowanceerrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/allowance/errors"

	"gorm.io/gorm"
)

const monthLayout = "2006-01"

//go:generate mockgen -source=allowance_service.go -destination=mock/allowance_service_mock.go -package=mock
type Service interface {
	GetPage(ctx context.Context, start, limit int) (PaginatedRecordsResponse, error)
	GetByID(ctx context.Context, id uint) (RecordResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetPage(ctx context.Context, start, limit int) (PaginatedRecordsResponse, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return PaginatedRecordsResponse{}, err
	}

	records, err := s.repo.FindPage(ctx, start, limit)
	if err != nil {
		return PaginatedRecordsResponse{}, err
	}

	if len(records) == 0 {
		return PaginatedRecordsResponse{}, allowanceerrors.ErrNoDataForRange
	}

	resp := PaginatedRecordsResponse{
		TotalRecords: total,
		Data:         make([]RecordResponse, 0, len(records)),
	}
	for _, record := range records {
		resp.Data = append(resp.Data, mapRecordToResponse(record))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (RecordResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, allowanceerrors.ErrRecordNotFound
		}
		return RecordResponse{}, err
	}
	return mapRecordToResponse(*record), nil
}

func mapRecordToResponse(record ShiftAllowance) RecordResponse {
	shifts := make([]ShiftDetail, 0, len(record.Mappings))
	for _, m := range record.Mappings {
		shifts = append(shifts, ShiftDetail{ShiftType: m.ShiftType, Days: m.Days})
	}

	return RecordResponse{
		ID:                record.ID,
		EmpID:             record.EmpID,
		EmpName:           record.EmpName,
		Grade:             record.Grade,
		Department:        record.Department,
		Client:            record.Client,
		Project:           record.Project,
		ProjectCode:       record.ProjectCode,
		AccountManager:    record.AccountManager,
		DeliveryManager:   record.DeliveryManager,
		PracticeLead:      record.PracticeLead,
		BillabilityStatus: record.BillabilityStatus,
		PracticeRemarks:   record.PracticeRemarks,
		RmgComments:       record.RmgComments,
		DurationMonth:     record.DurationMonth.Format(monthLayout),
		PayrollMonth:      record.PayrollMonth.Format(monthLayout),
		Shifts:            shifts,
	}
}
