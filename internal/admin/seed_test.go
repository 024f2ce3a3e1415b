package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Werneck0live/job-portal/internal/auth"
	"github.com/Werneck0live/job-portal/internal/repository/memory"
)

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := Seed(ctx, st.Companies(), st.Jobs(), "demo-pass", log); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	first, _ := st.Jobs().ListVisible(ctx)
	if len(first) != 7 {
		t.Fatalf("jobs = %d; want 7", len(first))
	}

	if err := Seed(ctx, st.Companies(), st.Jobs(), "demo-pass", log); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, _ := st.Jobs().ListVisible(ctx)
	if len(second) != len(first) {
		t.Fatalf("seed duplicated jobs: %d -> %d", len(first), len(second))
	}

	c, err := st.Companies().GetByEmail(ctx, "talent@slack.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !auth.CheckPassword(c.PasswordHash, "demo-pass") {
		t.Fatal("seeded company must log in with the demo password")
	}
	mine, _ := st.Jobs().ListByCompany(ctx, c.ID)
	if len(mine) != 2 {
		t.Fatalf("slack jobs = %d", len(mine))
	}
}

func TestSeed_RequiresPassword(t *testing.T) {
	st := memory.New()
	if err := Seed(context.Background(), st.Companies(), st.Jobs(), "", slog.Default()); err == nil {
		t.Fatal("want error")
	}
}
