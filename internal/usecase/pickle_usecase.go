package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

type PickleUsecase struct {
	pickleRepo    repo.PickleRepository
	reviewRepo    repo.ReviewRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewPickleUsecase(
	pickleRepo repo.PickleRepository,
	reviewRepo repo.ReviewRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *PickleUsecase {
	return &PickleUsecase{
		pickleRepo:    pickleRepo,
		reviewRepo:    reviewRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

type ListPicklesInput struct {
	Category string
	Q        string
}

type PickleListOutput struct {
	Pickles []repo.PickleWithRating `json:"pickles"`
}

type PickleDetailOutput struct {
	repo.PickleWithRating
	Reviews []repo.ReviewWithAuthor `json:"reviews"`
}

func (u *PickleUsecase) ListPickles(ctx context.Context, in ListPicklesInput) (PickleListOutput, error) {
	rows, err := u.pickleRepo.List(ctx, repo.PickleListQuery{Category: in.Category, Q: in.Q})
	if err != nil {
		return PickleListOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return PickleListOutput{Pickles: rows}, nil
}

func (u *PickleUsecase) GetPickleDetail(ctx context.Context, pickleID int64) (PickleDetailOutput, error) {
	if pickleID <= 0 {
		return PickleDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.pickleRepo.FindByID(ctx, pickleID)
	if err == repo.ErrNotFound {
		return PickleDetailOutput{}, NewHTTPError(http.StatusNotFound, "Pickle not found")
	}
	if err != nil {
		return PickleDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	reviews, err := u.reviewRepo.ListByPickleID(ctx, pickleID)
	if err != nil {
		return PickleDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	out := PickleDetailOutput{Reviews: reviews}
	out.Pickle = p
	out.ReviewCount = int64(len(reviews))
	if len(reviews) > 0 {
		var sum int
		for _, rv := range reviews {
			sum += rv.Rating
		}
		out.AvgRating = float64(sum) / float64(len(reviews))
	}
	return out, nil
}

func (u *PickleUsecase) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := u.pickleRepo.ListCategories(ctx)
	if err != nil {
		return []string{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return cats, nil
}

type AddReviewInput struct {
	Rating  int
	Comment string
}

func (u *PickleUsecase) AddReview(ctx context.Context, userID int64, pickleID int64, in AddReviewInput) (model.Review, error) {
	if userID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if pickleID <= 0 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "Valid rating required (1-5)")
	}

	if _, err := u.pickleRepo.FindByID(ctx, pickleID); err != nil {
		if err == repo.ErrNotFound {
			return model.Review{}, NewHTTPError(http.StatusNotFound, "Pickle not found")
		}
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	exists, err := u.reviewRepo.ExistsByUserAndPickle(ctx, userID, pickleID)
	if err != nil {
		return model.Review{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if exists {
		return model.Review{}, NewHTTPError(http.StatusConflict, "You have already reviewed this pickle")
	}

	created, err := u.reviewRepo.Create(ctx, model.Review{
		UserID:   userID,
		PickleID: pickleID,
		Rating:   in.Rating,
		Comment:  strings.TrimSpace(in.Comment),
	})
	if err != nil {
		// Unique index on (user, pickle) may still fire under races.
		return model.Review{}, NewHTTPError(http.StatusConflict, "You have already reviewed this pickle")
	}
	return created, nil
}

// ---- admin operations ----

type SavePickleInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Stock       int64
}

func (u *PickleUsecase) CreatePickle(ctx context.Context, in SavePickleInput) (model.Pickle, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "Price must be positive")
	}
	if in.Stock < 0 {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "Stock must not be negative")
	}

	created, err := u.pickleRepo.Create(ctx, model.Pickle{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Stock:       in.Stock,
	})
	if err != nil {
		return model.Pickle{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return created, nil
}

func (u *PickleUsecase) UpdatePickle(ctx context.Context, pickleID int64, in SavePickleInput) (model.Pickle, error) {
	if pickleID <= 0 {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "Price must be positive")
	}
	if in.Stock < 0 {
		return model.Pickle{}, NewHTTPError(http.StatusBadRequest, "Stock must not be negative")
	}

	p := model.Pickle{
		ID:          pickleID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Stock:       in.Stock,
	}
	if err := u.pickleRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Pickle{}, NewHTTPError(http.StatusNotFound, "Pickle not found")
		}
		return model.Pickle{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return p, nil
}

func (u *PickleUsecase) DeletePickle(ctx context.Context, actorAdminUserID int64, pickleID int64) error {
	if pickleID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.pickleRepo.SoftDelete(ctx, pickleID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Pickle not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionDeletePickle,
		ResourceType: model.AuditResourcePickle,
		ResourceID:   pickleID,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return nil
}

type SetStockInput struct {
	Stock  int64
	Reason string
}

func (u *PickleUsecase) SetStock(ctx context.Context, actorAdminUserID int64, pickleID int64, in SetStockInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if pickleID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "Stock must not be negative")
	}

	before, err := u.pickleRepo.FindByID(ctx, pickleID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Pickle not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = "manual adjustment"
	}

	if err := u.inventoryRepo.SetStockWithAdjustment(ctx, actorAdminUserID, pickleID, in.Stock, reason); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Pickle not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	beforeJSON, _ := json.Marshal(map[string]int64{"stock": before.Stock})
	afterJSON, _ := json.Marshal(map[string]int64{"stock": in.Stock})
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorAdminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourcePickle,
		ResourceID:   pickleID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return nil
}
