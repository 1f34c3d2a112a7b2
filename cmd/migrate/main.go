package main

import (
	"fmt"
	"os"
	"strings"

	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/pkg/database"

	"github.com/fatih/color"
)

// enumChecks mirrors the entity enums as CHECK constraints so the storage
// layer rejects values the application would.
var enumChecks = []struct {
	table, column string
	values        []string
}{
	{"companies", "jurisdiction", []string{"delaware", "france"}},
	{"founders", "status", []string{"invited", "pending_signature", "active"}},
	{"investors", "status", []string{"pending", "sent", "signed"}},
	{"documents", "type", []string{
		"incorporation", "bylaws", "founders_agreement", "ip_assignment", "board_consent",
		"stock_purchase", "safe", "nda", "statuts", "shareholders_agreement",
	}},
	{"documents", "status", []string{"drafting", "validating", "signing", "active"}},
	{"document_signatures", "status", []string{"pending", "sent", "signed"}},
	{"tasks", "status", []string{"pending", "in_progress", "completed"}},
	{"cap_table_entries", "holder_type", []string{"founder", "investor", "employee", "pool"}},
	{"chat_messages", "role", []string{"user", "assistant"}},
	{"index_entries", "source_type", []string{"document", "chat_message"}},
	{"notification_intents", "kind", []string{"founder_invitation", "signature_request"}},
	{"notification_intents", "status", []string{"pending", "sent", "failed"}},
}

func checkSQL(table, column string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	name := fmt.Sprintf("chk_%s_%s", table, column)
	return fmt.Sprintf(
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s IN (%s)); END IF; END $$;`,
		name, table, name, column, strings.Join(quoted, ", "),
	)
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 1: Setting up extensions...")
	for _, sql := range []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	} {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.Company{},
		&model.Founder{},
		&model.Investor{},
		&model.Document{},
		&model.DocumentSignature{},
		&model.NotificationIntent{},
		&model.Task{},
		&model.CapTableEntry{},
		&model.ChatMessage{},
		&model.IndexEntry{},
		&model.Notification{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 3: Adding enum constraints...")
	for _, c := range enumChecks {
		if err := db.Exec(checkSQL(c.table, c.column, c.values)).Error; err != nil {
			color.Yellow("Warn: %s.%s: %v", c.table, c.column, err)
		}
	}

	color.Green("Success: database migration completed")
}
