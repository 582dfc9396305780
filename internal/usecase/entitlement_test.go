package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	testhelpers "github.com/cyberscripts/storefront/internal/test"
)

var licensePattern = regexp.MustCompile(`^[A-Z0-9]{8}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{12}$`)

func TestEntitlementAssign(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	buyer, admin := seedBuyerAndAdmin(users)
	products := testhelpers.NewProductRepositoryStub()
	course := products.Seed(model.Product{Name: "Course", Slug: "course", Category: model.CategoryCourse, Price: 99.99, Status: model.ProductStatusPublished})
	uc := NewEntitlementUseCase(users, products)
	ctx := context.Background()

	if err := uc.Assign(ctx, admin.ID, buyer.ID, course.ID, model.CategoryCourse); err != nil {
		t.Fatalf("assign: %v", err)
	}

	purchases, err := uc.ListPurchases(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(purchases) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(purchases))
	}
	if purchases[0].Amount != 99.99 {
		t.Fatalf("expected catalog price recorded, got %v", purchases[0].Amount)
	}
	if !licensePattern.MatchString(purchases[0].LicenseKey) {
		t.Fatalf("license key has wrong shape: %q", purchases[0].LicenseKey)
	}
	if users.ByID[buyer.ID].TotalProducts != 1 || users.ByID[buyer.ID].TotalSpent != 99.99 {
		t.Fatalf("stats not recomputed: %+v", users.ByID[buyer.ID])
	}

	if err := uc.Assign(ctx, admin.ID, buyer.ID, course.ID, model.CategoryCourse); !errors.Is(err, domainErrors.ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
}

func TestEntitlementAssignGuards(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	buyer, admin := seedBuyerAndAdmin(users)
	products := testhelpers.NewProductRepositoryStub()
	course := products.Seed(model.Product{Name: "Course", Slug: "course", Category: model.CategoryCourse, Price: 99.99, Status: model.ProductStatusPublished})
	uc := NewEntitlementUseCase(users, products)
	ctx := context.Background()

	if err := uc.Assign(ctx, buyer.ID, buyer.ID, course.ID, ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin actor, got %v", err)
	}
	if err := uc.Assign(ctx, admin.ID, buyer.ID, 404, ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing product, got %v", err)
	}
	if err := uc.Assign(ctx, admin.ID, 404, course.ID, ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
	if err := uc.Assign(ctx, admin.ID, buyer.ID, course.ID, model.CategoryScript); !errors.Is(err, domainErrors.ErrCategoryMismatch) {
		t.Fatalf("expected ErrCategoryMismatch, got %v", err)
	}
}

func TestEntitlementRemove(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	buyer, admin := seedBuyerAndAdmin(users)
	products := testhelpers.NewProductRepositoryStub()
	course := products.Seed(model.Product{Name: "Course", Slug: "course", Category: model.CategoryCourse, Price: 50, Status: model.ProductStatusPublished})
	uc := NewEntitlementUseCase(users, products)
	ctx := context.Background()

	if err := uc.Assign(ctx, admin.ID, buyer.ID, course.ID, ""); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := uc.Remove(ctx, admin.ID, buyer.ID, course.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if users.ByID[buyer.ID].TotalProducts != 0 || users.ByID[buyer.ID].TotalSpent != 0 {
		t.Fatalf("stats not recomputed after removal: %+v", users.ByID[buyer.ID])
	}
	if err := uc.Remove(ctx, admin.ID, buyer.ID, course.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent entitlement, got %v", err)
	}

	owned, err := users.HasPurchase(ctx, buyer.ID, course.ID)
	if err != nil {
		t.Fatalf("has purchase: %v", err)
	}
	if owned {
		t.Fatal("expected entitlement gone")
	}
}

func TestAdminUserManagement(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	buyer, admin := seedBuyerAndAdmin(users)
	uc := NewAdminUseCase(users)
	ctx := context.Background()

	if _, err := uc.ListUsers(ctx, buyer.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	listed, err := uc.ListUsers(ctx, admin.ID)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 users, got %d", len(listed))
	}

	moderator := model.RoleModerator
	updated, err := uc.UpdateUser(ctx, admin.ID, buyer.ID, repository.UserUpdate{Role: &moderator})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Role != model.RoleModerator {
		t.Fatalf("role not updated: %s", updated.Role)
	}

	bad := model.Role("owner")
	if _, err := uc.UpdateUser(ctx, admin.ID, buyer.ID, repository.UserUpdate{Role: &bad}); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for unknown role, got %v", err)
	}

	demote := model.RoleUser
	if _, err := uc.UpdateUser(ctx, admin.ID, admin.ID, repository.UserUpdate{Role: &demote}); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected self-demotion to be refused, got %v", err)
	}

	if err := uc.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected self-deletion to be refused, got %v", err)
	}
	if err := uc.DeleteUser(ctx, admin.ID, buyer.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := users.GetByID(ctx, buyer.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
}
