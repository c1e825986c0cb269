// Copyright (c) 2026 NotesAI. All rights reserved.

package schema

// SystemSettingTable represents the 'system.setting' table
//
// Settings are stored as one JSONB document per key.
type SystemSettingTable struct {
	Table     string
	Key       string
	Value     string
	UpdatedAt string
}

var SystemSetting = SystemSettingTable{
	Table:     "system.setting",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
}
