package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// AdminServiceImpl implements domain.AdminService
type AdminServiceImpl struct {
	adminRepo   domain.AdminRepository
	passwordSvc domain.PasswordService
	audit       domain.AuditLogger
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo domain.AdminRepository, passwordSvc domain.PasswordService, audit domain.AuditLogger) *AdminServiceImpl {
	return &AdminServiceImpl{adminRepo: adminRepo, passwordSvc: passwordSvc, audit: audit}
}

// Create implements domain.AdminService
func (s *AdminServiceImpl) Create(ctx context.Context, req domain.CreateAdminRequest) (*domain.Admin, error) {
	if !domain.ValidPhone(req.Phone) {
		return nil, domain.ErrInvalidPhone
	}
	password := strings.TrimSpace(req.Password)
	if len(password) < MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &domain.Admin{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Phone:        req.Phone,
		PasswordHash: hashed,
		IsCreator:    req.IsCreator,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AdminCreatedEvent, domain.ActorAdmin, admin.ID).
		WithPhone(admin.Phone).
		WithMetadata("is_creator", admin.IsCreator))
	return admin, nil
}

// EnsureCreator implements domain.AdminService. An existing admin with the
// phone is returned untouched.
func (s *AdminServiceImpl) EnsureCreator(ctx context.Context, phone, password string) (*domain.Admin, error) {
	existing, err := s.adminRepo.FindByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}

	return s.Create(ctx, domain.CreateAdminRequest{
		Phone:     phone,
		Password:  password,
		Name:      "Creator",
		IsCreator: true,
	})
}

var _ domain.AdminService = (*AdminServiceImpl)(nil)
