package models

import "errors"

// SeedDefaultData inserts the system config rows the app expects to find.
// Existing rows are left untouched.
func SeedDefaultData() error {
	defaults := []SystemConfig{
		{Key: "email_enabled", Value: "false", Type: "bool", Group: "email", Label: "Enable email notifications"},
		{Key: "email_host", Value: "", Type: "string", Group: "email", Label: "SMTP host"},
		{Key: "email_port", Value: "587", Type: "int", Group: "email", Label: "SMTP port"},
		{Key: "email_username", Value: "", Type: "string", Group: "email", Label: "SMTP username"},
		{Key: "email_password", Value: "", Type: "string", Group: "email", Label: "SMTP password"},
		{Key: "email_from", Value: "", Type: "string", Group: "email", Label: "Sender address"},
		{Key: "email_use_tls", Value: "false", Type: "bool", Group: "email", Label: "Use TLS"},
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "general", Label: "System log retention (days)"},
	}

	var errs []error
	for _, cfg := range defaults {
		var existing SystemConfig
		err := DB.Where("`key` = ?", cfg.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if err := DB.Create(&cfg).Error; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
