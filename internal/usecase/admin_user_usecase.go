package usecase

import (
	"context"
	"net/http"

	"time"

	"github.com/shopspring/decimal"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

// Stock at or below this counts as "low" on the dashboard.
const lowStockThreshold = 5

type AdminUsecase struct {
	userRepo   repo.UserRepository
	orderRepo  repo.OrderRepository
	pickleRepo repo.PickleRepository
	auditRepo  repo.AuditLogRepository
}

func NewAdminUsecase(
	userRepo repo.UserRepository,
	orderRepo repo.OrderRepository,
	pickleRepo repo.PickleRepository,
	auditRepo repo.AuditLogRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		pickleRepo: pickleRepo,
		auditRepo:  auditRepo,
	}
}

func (u *AdminUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return users, nil
}

type UpdateUserRoleInput struct {
	Role string
}

func (u *AdminUsecase) UpdateUserRole(ctx context.Context, actorAdminUserID int64, targetUserID int64, in UpdateUserRoleInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	// Admins cannot change their own role; another admin has to.
	if targetUserID == actorAdminUserID {
		return NewHTTPError(http.StatusBadRequest, "Cannot change your own role")
	}

	role := model.Role(in.Role)
	if role != model.RoleUser && role != model.RoleAdmin {
		return NewHTTPError(http.StatusBadRequest, "Invalid role")
	}

	target, err := u.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if target == nil {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}

	if err := u.userRepo.UpdateRole(ctx, targetUserID, role); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateUserRole,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   `{"role":"` + string(target.Role) + `"}`,
		AfterJSON:    `{"role":"` + string(role) + `"}`,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return nil
}

func (u *AdminUsecase) DeleteUser(ctx context.Context, actorAdminUserID int64, targetUserID int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if targetUserID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if targetUserID == actorAdminUserID {
		return NewHTTPError(http.StatusBadRequest, "Cannot delete your own account")
	}

	if err := u.userRepo.Delete(ctx, targetUserID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionDeleteUser,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return nil
}

type DashboardOutput struct {
	TotalOrders  int64           `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalUsers   int64           `json:"total_users"`
	TotalPickles int64           `json:"total_pickles"`
	LowStock     int64           `json:"low_stock"`
}

func (u *AdminUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	stats, err := u.orderRepo.Stats(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	users, err := u.userRepo.CountAll(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	pickles, err := u.pickleRepo.CountAll(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	low, err := u.pickleRepo.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	return DashboardOutput{
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: stats.TotalRevenue,
		TotalUsers:   users,
		TotalPickles: pickles,
		LowStock:     low,
	}, nil
}

func (u *AdminUsecase) ListAuditLogs(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return logs, nil
}
