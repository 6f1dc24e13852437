// Package main 系统初始化入口：迁移表结构、创建默认工作区与管理员、准备向量集合
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/wire"
)

const defaultWorkspaceSlug = "default-workspace"

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	deps, cleanup, err := wire.InitializeBootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize bootstrap: %v", err)
	}
	defer cleanup()

	// 1. 迁移表结构
	fmt.Println("Running database migrations...")
	if err := migrate(deps); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// 2. 默认工作区
	workspace, err := ensureWorkspace(ctx, deps)
	if err != nil {
		log.Fatalf("failed to ensure default workspace: %v", err)
	}

	// 3. 首个管理员与预付费账户
	admin, err := ensureAdmin(ctx, deps, cfg, workspace)
	if err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	// 4. 示例项目与默认内容类型
	if err := ensureDemoProject(ctx, deps, workspace, admin); err != nil {
		log.Fatalf("failed to ensure demo project: %v", err)
	}

	// 5. 向量集合
	if cfg.Vector.Enabled && deps.Indexer != nil {
		fmt.Println("Ensuring knowledge chunks collection...")
		if err := deps.Indexer.EnsureCollection(ctx); err != nil {
			log.Fatalf("failed to ensure knowledge collection: %v", err)
		}
	}

	fmt.Println("Bootstrap completed successfully.")
}

func migrate(deps *wire.BootstrapDeps) error {
	return deps.PgClient.DB().AutoMigrate(
		&entity.Workspace{},
		&entity.User{},
		&entity.Project{},
		&entity.Category{},
		&entity.Persona{},
		&entity.BrandVoice{},
		&entity.KnowledgeItem{},
		&entity.Example{},
		&entity.UploadFile{},
		&entity.ContentPiece{},
		&entity.ContentVersion{},
		&entity.ChatMessage{},
		&entity.BillingAccount{},
		&entity.UsageRecord{},
		&entity.GeneratedImage{},
	)
}

func ensureWorkspace(ctx context.Context, deps *wire.BootstrapDeps) (*entity.Workspace, error) {
	workspace, err := deps.Workspaces.GetBySlug(ctx, defaultWorkspaceSlug)
	if err != nil {
		return nil, err
	}
	if workspace != nil {
		fmt.Printf("Default workspace already exists with ID: %s\n", workspace.ID)
		return workspace, nil
	}

	workspace = entity.NewWorkspace("Default Workspace", defaultWorkspaceSlug)
	workspace.ID = uuid.NewString()
	if err := deps.Workspaces.Create(ctx, workspace); err != nil {
		return nil, err
	}
	fmt.Printf("Default workspace created with ID: %s\n", workspace.ID)
	return workspace, nil
}

func ensureAdmin(ctx context.Context, deps *wire.BootstrapDeps, cfg *config.Config, workspace *entity.Workspace) (*entity.User, error) {
	adminEmail := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@contentforge.local"
	}
	adminPassword := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123" // 生产环境请务必通过环境变量设置
	}

	admin, err := deps.Users.GetByEmail(ctx, adminEmail)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		fmt.Printf("Creating admin user: %s...\n", adminEmail)
		admin = entity.NewUser(workspace.ID, adminEmail, "System Admin")
		admin.ID = uuid.NewString()
		admin.Role = entity.UserRoleAdmin
		if err := admin.SetPassword(adminPassword); err != nil {
			return nil, err
		}
		if err := deps.Users.Create(ctx, admin); err != nil {
			return nil, err
		}
		fmt.Println("Admin user created successfully.")
	} else {
		fmt.Printf("Admin user %s already exists.\n", adminEmail)
	}

	if workspace.OwnerID == "" {
		workspace.OwnerID = admin.ID
		if err := deps.Workspaces.Update(ctx, workspace); err != nil {
			return nil, err
		}
	}

	account, err := deps.Accounts.GetByUserID(ctx, admin.ID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = entity.NewBillingAccount(workspace.ID, admin.ID, cfg.Billing.InitialBalance)
		if err := deps.Accounts.Create(ctx, account); err != nil {
			return nil, err
		}
		fmt.Printf("Billing account created with initial balance: %d tokens\n", cfg.Billing.InitialBalance)
	}

	return admin, nil
}

// ensureDemoProject 创建示例项目和常用内容类型，方便首次运行即可生成
func ensureDemoProject(ctx context.Context, deps *wire.BootstrapDeps, workspace *entity.Workspace, admin *entity.User) error {
	existing, err := deps.Projects.ListByWorkspace(ctx, workspace.ID, repository.NewPagination(1, 1))
	if err != nil {
		return err
	}
	if existing.Total > 0 {
		fmt.Println("Projects already exist, skipping demo project.")
		return nil
	}

	project := entity.NewProject(workspace.ID, admin.ID, "Demo Project")
	project.ID = uuid.NewString()
	if err := deps.Projects.Create(ctx, project); err != nil {
		return err
	}
	fmt.Printf("Demo project created with ID: %s\n", project.ID)

	categories := []*entity.Category{
		{
			WorkspaceID:      workspace.ID,
			ProjectID:        project.ID,
			Name:             "Blog Post",
			Description:      "Long-form article for the company blog",
			FormatGuidelines: "800-1500 words. Start with a hook, use descriptive subheadings, end with a call to action.",
		},
		{
			WorkspaceID:      workspace.ID,
			ProjectID:        project.ID,
			Name:             "Social Media Post",
			Description:      "Short post for social channels",
			FormatGuidelines: "Under 280 characters. Conversational tone, at most two hashtags, no links in the body.",
		},
		{
			WorkspaceID:      workspace.ID,
			ProjectID:        project.ID,
			Name:             "Newsletter",
			Description:      "Weekly email to subscribers",
			FormatGuidelines: "Friendly greeting, three short sections with headers, sign off with the team name.",
		},
	}
	for _, category := range categories {
		category.ID = uuid.NewString()
		if err := deps.Categories.Create(ctx, category); err != nil {
			return err
		}
	}
	fmt.Printf("Created %d default content categories.\n", len(categories))
	return nil
}
