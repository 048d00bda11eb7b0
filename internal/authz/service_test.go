package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/products/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if err := svc.AssignRole(1, "ops"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/products/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/products/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestRevokeRoleRemovesAccess(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("ops", "/admin/orders", "GET"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}
	if err := svc.AssignRole(2, "ops"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(2, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected role permission granted")
	}

	if err := svc.RevokeRole(2, "ops"); err != nil {
		t.Fatalf("revoke role failed: %v", err)
	}
	allow, err = svc.EnforceAdmin(2, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected permission removed after revoke")
	}
}

func TestWildcardActionPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("admin", "/admin/*", "*"); err != nil {
		t.Fatalf("grant wildcard policy failed: %v", err)
	}
	if err := svc.AssignRole(3, "admin"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		allow, err := svc.EnforceAdmin(3, "/api/v1/admin/categories/9", method)
		if err != nil {
			t.Fatalf("enforce %s failed: %v", method, err)
		}
		if !allow {
			t.Fatalf("expected wildcard policy to allow %s", method)
		}
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/api/v1", want: "/"},
		{in: "", want: ""},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	got, err := NormalizeRole("  Moderator ")
	if err != nil {
		t.Fatalf("normalize role failed: %v", err)
	}
	if got != "role:moderator" {
		t.Fatalf("role want role:moderator got %s", got)
	}

	got, err = NormalizeRole("role:admin")
	if err != nil {
		t.Fatalf("normalize prefixed role failed: %v", err)
	}
	if got != "role:admin" {
		t.Fatalf("role want role:admin got %s", got)
	}

	if _, err := NormalizeRole("   "); err == nil {
		t.Fatalf("expected error for empty role")
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := Bootstrap(svc); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	if err := svc.AssignRole(4, "moderator"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}

	allow, err := svc.EnforceAdmin(4, "/api/v1/admin/reviews", "GET")
	if err != nil {
		t.Fatalf("enforce moderator read failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected moderator to read reviews")
	}

	allow, err = svc.EnforceAdmin(4, "/api/v1/admin/products", "POST")
	if err != nil {
		t.Fatalf("enforce moderator write failed: %v", err)
	}
	if allow {
		t.Fatalf("expected moderator denied product writes")
	}
}
