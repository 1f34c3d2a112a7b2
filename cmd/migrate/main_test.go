package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSQL(t *testing.T) {
	sql := checkSQL("documents", "status", []string{"drafting", "active"})

	assert.Contains(t, sql, "conname = 'chk_documents_status'")
	assert.Contains(t, sql, "ALTER TABLE documents ADD CONSTRAINT chk_documents_status CHECK (status IN ('drafting', 'active'))")
}
