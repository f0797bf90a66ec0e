package db

import (
	"fmt"
	"testing"

	"github.com/diewo77/go-invoicing/internal/models"
)

func TestConnectMigrateSeed(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := Seed(gdb); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var texts []models.OptionalText
	if err := gdb.Order("key").Find(&texts).Error; err != nil {
		t.Fatalf("load texts: %v", err)
	}
	if len(texts) != 3 {
		t.Fatalf("got %d seeded texts, want 3", len(texts))
	}
	wantKeys := []string{"bank_details", "payment_terms", "vat_reverse_charge"}
	for i, key := range wantKeys {
		if texts[i].Key != key {
			t.Errorf("texts[%d].Key = %q, want %q", i, texts[i].Key, key)
		}
	}

	// Seeding again must not duplicate or overwrite.
	if err := gdb.Model(&models.OptionalText{}).
		Where("key = ?", "payment_terms").
		Update("content", "Payment due within 30 days.").Error; err != nil {
		t.Fatalf("edit text: %v", err)
	}
	if err := Seed(gdb); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	var count int64
	gdb.Model(&models.OptionalText{}).Count(&count)
	if count != 3 {
		t.Errorf("got %d texts after reseed, want 3", count)
	}
	var edited models.OptionalText
	gdb.First(&edited, "key = ?", "payment_terms")
	if edited.Content != "Payment due within 30 days." {
		t.Error("reseed overwrote user edit")
	}
}
