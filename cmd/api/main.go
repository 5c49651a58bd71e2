package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/cistech/hrms-backend-go/internal/config"
	appHTTP "github.com/cistech/hrms-backend-go/internal/handler/http"
	"github.com/cistech/hrms-backend-go/internal/pkg/database"
	"github.com/cistech/hrms-backend-go/internal/pkg/jwt"
	"github.com/cistech/hrms-backend-go/internal/pkg/storage"
	"github.com/cistech/hrms-backend-go/internal/repository/postgresql"
	fileService "github.com/cistech/hrms-backend-go/internal/service/file"
	quotaService "github.com/cistech/hrms-backend-go/internal/service/quota"
	userService "github.com/cistech/hrms-backend-go/internal/service/user"
	workflowService "github.com/cistech/hrms-backend-go/internal/service/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	quotaRepo := postgresql.NewQuotaRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	fileSvc := fileService.NewFileService(fileStorage)
	quotaSvc := quotaService.NewService(quotaRepo)
	userSvc := userService.NewService(db, userRepo, quotaRepo, requestRepo)
	workflowSvc := workflowService.NewService(db, userRepo, quotaSvc, requestRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, userSvc)
	requestHandler := appHTTP.NewRequestHandler(workflowSvc, fileSvc)
	quotaHandler := appHTTP.NewQuotaHandler(quotaSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(jwtSvc, authHandler, requestHandler, quotaHandler, userHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
