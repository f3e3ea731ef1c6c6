package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/app/apperr"
	"backoffice/internal/app/model"

	"github.com/google/uuid"
)

type stubAdmins struct {
	admin *model.Admin
}

func (s *stubAdmins) ReadByNameAndPassword(ctx context.Context, name, password string) (*model.Admin, error) {
	return nil, apperr.ErrNotFound
}

func (s *stubAdmins) Read(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	if s.admin != nil && s.admin.ID == id {
		return s.admin, nil
	}
	return nil, apperr.ErrNotFound
}

func TestMemoryCreateAndRead(t *testing.T) {
	admin := &model.Admin{ID: uuid.New(), Name: "carla"}
	svc := NewMemory("test-secret", &stubAdmins{admin: admin}, WithIssuer("backoffice"))
	ctx := context.Background()

	token, err := svc.Create(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	got, err := svc.Read(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != admin.ID || got.Name != "carla" {
		t.Errorf("unexpected admin: %+v", got)
	}
}

func TestMemoryReadRejectsGarbage(t *testing.T) {
	svc := NewMemory("test-secret", &stubAdmins{})

	if _, err := svc.Read(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestMemoryReadRejectsForeignToken(t *testing.T) {
	admin := &model.Admin{ID: uuid.New(), Name: "carla"}
	other := NewMemory("other-secret", &stubAdmins{admin: admin})

	token, err := other.Create(context.Background(), admin)
	if err != nil {
		t.Fatal(err)
	}

	svc := NewMemory("test-secret", &stubAdmins{admin: admin})
	if _, err := svc.Read(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestMemoryReadExpired(t *testing.T) {
	admin := &model.Admin{ID: uuid.New(), Name: "carla"}
	svc := NewMemory("test-secret", &stubAdmins{admin: admin}, WithTokenLifetime(-time.Minute))
	ctx := context.Background()

	token, err := svc.Create(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Read(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}
