package main

import (
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"

	"picklestore/internal/config"
	"picklestore/internal/delivery"
	"picklestore/internal/domain/model"
	"picklestore/internal/handler"
	"picklestore/internal/infra/db"
	infrarepo "picklestore/internal/infra/repository"
	"picklestore/internal/payment"
	"picklestore/internal/server"
	"picklestore/internal/usecase"
	"picklestore/internal/validator"
)

const tokenTTL = 24 * time.Hour

// jwtIssuer signs HS256 access tokens for the auth usecase.
type jwtIssuer struct {
	secret []byte
}

func (i jwtIssuer) Issue(userID int64, username string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(tokenTTL)
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", userID),
		"username": username,
		"role":     string(role),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func main() {
	// Missing .env is fine in environments configured externally.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Pickle{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.Contact{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := infrarepo.NewUserGormRepository(gormDB)
	pickleRepo := infrarepo.NewPickleGormRepository(gormDB)
	inventoryRepo := infrarepo.NewInventoryGormRepository(gormDB)
	cartRepo := infrarepo.NewCartGormRepository(gormDB)
	orderRepo := infrarepo.NewOrderGormRepository(gormDB)
	reviewRepo := infrarepo.NewReviewGormRepository(gormDB)
	contactRepo := infrarepo.NewContactGormRepository(gormDB)
	auditRepo := infrarepo.NewAuditLogGormRepository(gormDB)
	txManager := infrarepo.NewTxManagerGorm(gormDB)

	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	feeCalc := delivery.NewDefaultCalculator()

	authUsecase := usecase.NewAuthUsecase(userRepo, validator.NewAuthValidator(userRepo), jwtIssuer{secret: []byte(cfg.JWTSecret)})
	pickleUsecase := usecase.NewPickleUsecase(pickleRepo, reviewRepo, inventoryRepo, auditRepo)
	cartUsecase := usecase.NewCartUsecase(cartRepo, cartRepo, pickleRepo)
	orderUsecase := usecase.NewOrderUsecase(txManager, feeCalc, gateway, cfg.AllowCOD)
	adminOrderUsecase := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	adminUsecase := usecase.NewAdminUsecase(userRepo, orderRepo, pickleRepo, auditRepo)
	contactUsecase := usecase.NewContactUsecase(contactRepo)

	e := server.New(cfg,
		handler.NewAuthHandler(authUsecase),
		handler.NewPickleHandler(pickleUsecase),
		handler.NewCartHandler(cartUsecase),
		handler.NewOrderHandler(orderUsecase),
		handler.NewContactHandler(contactUsecase),
		handler.NewAdminPickleHandler(pickleUsecase),
		handler.NewAdminOrderHandler(adminOrderUsecase),
		handler.NewAdminUserHandler(adminUsecase),
	)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
